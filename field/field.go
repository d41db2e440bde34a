// Package field holds the non-spatial attribute values that ride along with
// each feature. Values keep their JSON kind so that attributes survive a clip
// byte-for-byte.
package field

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var ZeroValue = Value{kind: Number, data: "0", num: 0}
var ZeroField = Field{name: "", value: ZeroValue}

type Kind byte

const (
	Null   = Kind(gjson.Null)
	False  = Kind(gjson.False)
	Number = Kind(gjson.Number)
	String = Kind(gjson.String)
	True   = Kind(gjson.True)
	JSON   = Kind(gjson.JSON)
)

type Value struct {
	kind Kind
	data string
	num  float64
}

func (v Value) IsZero() bool {
	return (v.kind == Number && v.data == "0" && v.num == 0) || v == (Value{})
}

func (v Value) Equals(b Value) bool {
	if v.kind != b.kind {
		return false
	}
	if v.kind == Number {
		return v.num == b.num
	}
	return v.data == b.data
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Data() string {
	return v.data
}

func (v Value) Num() float64 {
	return v.num
}

func (v Value) JSON() string {
	switch v.Kind() {
	case Number:
		switch v.Data() {
		case "NaN":
			return `"NaN"`
		case "+Inf":
			return `"+Inf"`
		case "-Inf":
			return `"-Inf"`
		default:
			return v.Data()
		}
	case String:
		return string(gjson.AppendJSONString(nil, v.Data()))
	case True:
		return "true"
	case False:
		return "false"
	case Null:
		if v != (Value{}) {
			return "null"
		}
	case JSON:
		return v.Data()
	}
	return "0"
}

type Field struct {
	name  string
	value Value
}

func (f Field) Name() string {
	return f.name
}

func (f Field) Value() Value {
	return f.value
}

var nan = math.NaN()
var pinf = math.Inf(+1)
var ninf = math.Inf(-1)

// ValueOf parses data into a typed attribute value. Numbers, booleans, null,
// and raw JSON are recognized; everything else becomes a String.
func ValueOf(data string) Value {
	data = strings.TrimSpace(data)
	num, err := strconv.ParseFloat(data, 64)
	if err == nil {
		if math.IsInf(num, 0) {
			if math.IsInf(num, +1) {
				return Value{kind: Number, data: "+Inf", num: pinf}
			}
			return Value{kind: Number, data: "-Inf", num: ninf}
		} else if math.IsNaN(num) {
			return Value{kind: Number, data: "NaN", num: nan}
		}
		// Make sure that this is a JSON compatible number.
		// For example, "000123" and "000_123" both parse as floats but aren't
		// really Numbers that can be represented in JSON.
		if gjson.Valid(data) {
			return Value{kind: Number, data: data, num: num}
		}
	} else if gjson.Valid(data) {
		r := gjson.Parse(data)
		switch r.Type {
		case gjson.Null:
			return Value{kind: Null, data: "null"}
		case gjson.JSON:
			return Value{kind: JSON, data: string(pretty.Ugly([]byte(data)))}
		case gjson.True:
			return Value{kind: True, data: "true"}
		case gjson.False:
			return Value{kind: False, data: "false"}
		case gjson.Number:
			// Ignore. Numbers will always be picked up by the ParseFloat above.
		case gjson.String:
			// Ignore. Strings fallthrough by default.
		}
		// Extract String from JSON
		data = r.String()
	}
	// Check if string is NaN, Inf(inity), +Inf(inity), -Inf(inity)
	if len(data) >= 3 && len(data) <= 9 {
		switch data[0] {
		case '-', '+', 'I', 'i', 'N', 'n':
			switch strings.ToLower(data) {
			case "nan":
				return Value{kind: Number, data: "NaN", num: nan}
			case "inf", "+inf", "infinity", "+infinity":
				return Value{kind: Number, data: "+Inf", num: pinf}
			case "-inf", "-infinity":
				return Value{kind: Number, data: "-Inf", num: ninf}
			}
		}
	}

	return Value{kind: String, data: data}
}

func Make(name, data string) Field {
	return Field{
		strings.TrimSpace(name),
		ValueOf(data),
	}
}
