package main

import (
	"context"
	"fmt"

	"github.com/trezcool/studyhub/storage/seed"
)

func (cli *commandLine) seed() error {
	usr, err := seed.Demo(context.Background(), cli.store)
	switch err {
	case nil:
		fmt.Printf("demo data loaded; login as %q / %q\n", usr.Username, seed.DemoPassword)
	case seed.ErrAlreadySeeded:
		fmt.Println("demo data already loaded")
	default:
		return err
	}
	return nil
}
