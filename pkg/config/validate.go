package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/gommon/bytes"
	"github.com/multiformats/go-multiaddr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// report field names as they appear in the config file
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "abspath", func(fl validator.FieldLevel) bool {
		return filepath.IsAbs(fl.Field().String())
	})
	mustRegister(v, "loglevel", func(fl validator.FieldLevel) bool {
		_, err := logging.LevelFromString(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "bytesize", func(fl validator.FieldLevel) bool {
		_, err := bytes.Parse(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "multiaddr", func(fl validator.FieldLevel) bool {
		_, err := multiaddr.NewMultiaddr(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %s", tag, err))
	}
}

func validateConfig(cfg any) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
