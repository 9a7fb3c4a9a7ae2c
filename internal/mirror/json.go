package mirror

import (
	jsoniter "github.com/json-iterator/go"
	"gorm.io/datatypes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func jsonMarshal(v interface{}) (datatypes.JSON, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
