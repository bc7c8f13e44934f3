package study

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

var nullPkg = reflect.TypeOf(null.String{}).PkgPath()

// decodeUpdate decodes data into the update struct pointed to by dst.
// A nullable field sent as an explicit JSON null is set to an invalid null value, which clears the column;
// a missing field stays nil and is left untouched.
func decodeUpdate(dst interface{}, alias interface{}, data []byte) error {
	if err := json.Unmarshal(data, alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "reading update fields")
	}
	v := reflect.ValueOf(dst).Elem()
	typ := v.Type()
	for i := 0; i < typ.NumField(); i++ {
		fld := typ.Field(i)
		if fld.Type.Kind() != reflect.Ptr || fld.Type.Elem().PkgPath() != nullPkg {
			continue
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if msg, ok := raw[name]; ok && bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			v.Field(i).Set(reflect.New(fld.Type.Elem()))
		}
	}
	return nil
}

func (u *CourseUpdate) UnmarshalJSON(data []byte) error {
	type alias CourseUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *AssignmentUpdate) UnmarshalJSON(data []byte) error {
	type alias AssignmentUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *NoteUpdate) UnmarshalJSON(data []byte) error {
	type alias NoteUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *StudyGroupUpdate) UnmarshalJSON(data []byte) error {
	type alias StudyGroupUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *FlashcardUpdate) UnmarshalJSON(data []byte) error {
	type alias FlashcardUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *PomodoroSessionUpdate) UnmarshalJSON(data []byte) error {
	type alias PomodoroSessionUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *UserAchievementUpdate) UnmarshalJSON(data []byte) error {
	type alias UserAchievementUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *UserChallengeUpdate) UnmarshalJSON(data []byte) error {
	type alias UserChallengeUpdate
	return decodeUpdate(u, (*alias)(u), data)
}

func (u *UserStatsUpdate) UnmarshalJSON(data []byte) error {
	type alias UserStatsUpdate
	return decodeUpdate(u, (*alias)(u), data)
}
