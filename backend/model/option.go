package model

import (
	"strconv"
	"strings"

	"evidentia/backend/common"

	"github.com/burugo/thing"
)

// Option is one persisted runtime setting. The full set is mirrored into
// package common's variables on boot and on every update.
type Option struct {
	thing.BaseModel
	Key   string `json:"key" db:"key,unique"`
	Value string `json:"value" db:"value"`
}

func (o *Option) TableName() string {
	return "options"
}

var OptionDB *thing.Thing[*Option]
var OptionMap map[string]string

func OptionInit() error {
	var err error
	OptionDB, err = thing.Use[*Option]()
	return err
}

func InitOptionMapFromDB() error {
	common.OptionMapRWMutex.Lock()
	OptionMap = map[string]string{
		"RegisterEnabled":      strconv.FormatBool(common.RegisterEnabled),
		"PasswordLoginEnabled": strconv.FormatBool(common.PasswordLoginEnabled),
		"ContactRelayEnabled":  strconv.FormatBool(common.ContactRelayEnabled),
	}
	common.OptionMapRWMutex.Unlock()

	options, err := OptionDB.Query(thing.QueryParams{}).Fetch(0, 1000)
	if err != nil {
		return err
	}
	for _, option := range options {
		if err := updateOptionMap(option.Key, option.Value); err != nil {
			common.SysError("failed to apply option " + option.Key + ": " + err.Error())
		}
	}
	return nil
}

func AllOptions() (map[string]string, error) {
	common.OptionMapRWMutex.RLock()
	defer common.OptionMapRWMutex.RUnlock()
	options := make(map[string]string, len(OptionMap))
	for k, v := range OptionMap {
		options[k] = v
	}
	return options, nil
}

// UpdateOption persists the option and applies it to the running process.
func UpdateOption(key string, value string) error {
	options, err := OptionDB.Where("`key` = ?", key).Fetch(0, 1)
	if err != nil {
		return err
	}
	var option *Option
	if len(options) == 0 {
		option = &Option{Key: key}
	} else {
		option = options[0]
	}
	option.Value = value
	if err := OptionDB.Save(option); err != nil {
		return err
	}
	return updateOptionMap(key, value)
}

func updateOptionMap(key string, value string) error {
	common.OptionMapRWMutex.Lock()
	defer common.OptionMapRWMutex.Unlock()
	OptionMap[key] = value
	if strings.HasSuffix(key, "Enabled") {
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		switch key {
		case "RegisterEnabled":
			common.RegisterEnabled = boolValue
		case "PasswordLoginEnabled":
			common.PasswordLoginEnabled = boolValue
		case "ContactRelayEnabled":
			common.ContactRelayEnabled = boolValue
		}
	}
	return nil
}
