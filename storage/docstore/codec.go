package docstore

import (
	"bytes"
	"reflect"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var tDecimal = reflect.TypeOf(decimal.Decimal{})

// Registry is the bson registry shared by every driver: the defaults plus decimal.Decimal as a string.
var Registry = newRegistry()

func newRegistry() *bsoncodec.Registry {
	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tDecimal, bsoncodec.ValueEncoderFunc(decimalEncodeValue))
	reg.RegisterTypeDecoder(tDecimal, bsoncodec.ValueDecoderFunc(decimalDecodeValue))
	return reg
}

func decimalEncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tDecimal {
		return bsoncodec.ValueEncoderError{Name: "decimalEncodeValue", Types: []reflect.Type{tDecimal}, Received: val}
	}
	return vw.WriteString(val.Interface().(decimal.Decimal).String())
}

func decimalDecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tDecimal {
		return bsoncodec.ValueDecoderError{Name: "decimalDecodeValue", Types: []reflect.Type{tDecimal}, Received: val}
	}

	var d decimal.Decimal
	switch vr.Type() {
	case bsontype.String:
		s, err := vr.ReadString()
		if err != nil {
			return err
		}
		if d, err = decimal.NewFromString(s); err != nil {
			return err
		}
	case bsontype.Double:
		f, err := vr.ReadDouble()
		if err != nil {
			return err
		}
		d = decimal.NewFromFloat(f)
	case bsontype.Int32:
		i, err := vr.ReadInt32()
		if err != nil {
			return err
		}
		d = decimal.NewFromInt32(i)
	case bsontype.Int64:
		i, err := vr.ReadInt64()
		if err != nil {
			return err
		}
		d = decimal.NewFromInt(i)
	case bsontype.Null:
		if err := vr.ReadNull(); err != nil {
			return err
		}
	default:
		return errors.Errorf("cannot decode %v into a decimal.Decimal", vr.Type())
	}
	val.Set(reflect.ValueOf(d))
	return nil
}

// Marshal encodes doc as BSON.
func Marshal(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer
	vw, err := bsonrw.NewBSONValueWriter(&buf)
	if err != nil {
		return nil, err
	}
	if err = encode(vw, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes BSON data into out.
func Unmarshal(data []byte, out interface{}) error {
	return decode(bsonrw.NewBSONDocumentReader(data), out)
}

// MarshalJSON encodes doc as relaxed extended JSON; string fields stay plain JSON strings.
func MarshalJSON(doc interface{}) ([]byte, error) {
	var buf bytes.Buffer
	vw, err := bsonrw.NewExtJSONValueWriter(&buf, false /* canonical */, false /* escapeHTML */)
	if err != nil {
		return nil, err
	}
	if err = encode(vw, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes relaxed extended JSON data into out.
func UnmarshalJSON(data []byte, out interface{}) error {
	vr, err := bsonrw.NewExtJSONValueReader(bytes.NewReader(data), false /* canonical */)
	if err != nil {
		return err
	}
	return decode(vr, out)
}

func encode(vw bsonrw.ValueWriter, doc interface{}) error {
	enc, err := bson.NewEncoder(vw)
	if err != nil {
		return err
	}
	if err = enc.SetRegistry(Registry); err != nil {
		return err
	}
	return errors.Wrap(enc.Encode(doc), "encoding document")
}

func decode(vr bsonrw.ValueReader, out interface{}) error {
	dec, err := bson.NewDecoder(vr)
	if err != nil {
		return err
	}
	if err = dec.SetRegistry(Registry); err != nil {
		return err
	}
	return errors.Wrap(dec.Decode(out), "decoding document")
}

// DecodeAll appends every raw document to the slice out points to, using unmarshal on each.
func DecodeAll(docs [][]byte, out interface{}, unmarshal func([]byte, interface{}) error) error {
	ptr := reflect.ValueOf(out)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Slice {
		return errors.Errorf("out must be a pointer to a slice, got %T", out)
	}
	slice := ptr.Elem()
	elemType := slice.Type().Elem()

	result := reflect.MakeSlice(slice.Type(), 0, len(docs))
	for _, data := range docs {
		elem := reflect.New(elemType)
		if err := unmarshal(data, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}

// Matches reports whether the BSON document data satisfies f.
func Matches(data []byte, f Filter) bool {
	raw := bson.Raw(data)
	for key, want := range f {
		got, ok := raw.Lookup(key).StringValueOK()
		if !ok || got != want {
			return false
		}
	}
	return true
}
