package mongoclient

import (
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"golang.org/x/xerrors"
)

var (
	ErrNotStruct = xerrors.New("filter must be a struct")
)

// MakeBsonM turns a struct of optional fields into a selector.
// Nil pointers and zero values are skipped, non-nil pointers are dereferenced.
func MakeBsonM(filter interface{}) (bson.M, error) {
	val := reflect.ValueOf(filter)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}

	bsonM := bson.M{}
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		tag, err := bsoncodec.DefaultStructTagParser(val.Type().Field(i))
		if err != nil {
			return nil, err
		}
		if tag.Skip || !field.CanInterface() || field.IsZero() {
			continue
		}
		if field.Kind() == reflect.Ptr {
			bsonM[tag.Name] = field.Elem().Interface()
			continue
		}
		bsonM[tag.Name] = field.Interface()
	}

	return bsonM, nil
}
