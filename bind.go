package fulcrum

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/valyala/fastjson"
)

// ErrNoBody is returned by BindJSON when the request declared no body.
var ErrNoBody = errors.New("fulcrum: request has no body")

var fastjsonParserPool fastjson.ParserPool

// BindJSON validates the request body with a cheap fastjson parse
// (catching malformed JSON before paying for a full goccy/go-json
// unmarshal into obj) and then decodes it into obj.
func (c *Context) BindJSON(obj interface{}) error {
	body := c.Request.Body()
	if len(body) == 0 {
		return ErrNoBody
	}

	p := fastjsonParserPool.Get()
	defer fastjsonParserPool.Put(p)
	if _, err := p.ParseBytes(body); err != nil {
		return fmt.Errorf("fulcrum: malformed JSON body: %w", err)
	}

	if err := json.Unmarshal(body, obj); err != nil {
		return fmt.Errorf("fulcrum: failed to unmarshal JSON: %w", err)
	}
	return nil
}

// BindQuery populates obj's fields tagged `query:"name"` from the
// request's query parameters. obj must be a pointer to a struct.
func (c *Context) BindQuery(obj interface{}) error {
	return bindTagged(obj, "query", func(name string) (string, bool) {
		return c.Request.Query(name)
	})
}

// BindParams populates obj's fields tagged `param:"name"` from path
// parameters the router extracted. obj must be a pointer to a struct.
func (c *Context) BindParams(obj interface{}) error {
	return bindTagged(obj, "param", c.Param)
}

func bindTagged(obj interface{}, tag string, lookup func(string) (string, bool)) error {
	objValue := reflect.ValueOf(obj)
	if objValue.Kind() != reflect.Ptr || objValue.Elem().Kind() != reflect.Struct {
		return errors.New("fulcrum: obj must be a pointer to a struct")
	}

	elem := objValue.Elem()
	elemType := elem.Type()

	for i := 0; i < elem.NumField(); i++ {
		field := elemType.Field(i)
		fieldValue := elem.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		name := field.Tag.Get(tag)
		if name == "" {
			continue
		}
		raw, ok := lookup(name)
		if !ok {
			continue
		}

		if err := setField(fieldValue, raw); err != nil {
			return fmt.Errorf("fulcrum: field %s: %w", field.Name, err)
		}
	}
	return nil
}

func setField(fieldValue reflect.Value, raw string) error {
	switch fieldValue.Kind() {
	case reflect.String:
		fieldValue.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		fieldValue.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		fieldValue.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		fieldValue.SetFloat(v)
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		fieldValue.SetBool(v)
	default:
		return fmt.Errorf("unsupported field kind %s", fieldValue.Kind())
	}
	return nil
}
