package rpc

import (
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/stonefield/jiraSOAP/core/entity"
)

// Arg is one positional argument of a remote call. It writes itself into
// the parameter slot element.
type Arg interface {
	encode(slot *etree.Element)
}

type argFunc func(slot *etree.Element)

func (f argFunc) encode(slot *etree.Element) { f(slot) }

// String passes s as text.
func String(s string) Arg {
	return argFunc(func(slot *etree.Element) { slot.SetText(s) })
}

// Int passes n in decimal.
func Int(n int64) Arg {
	return argFunc(func(slot *etree.Element) { slot.SetText(strconv.FormatInt(n, 10)) })
}

// Bool passes b as "true" or "false".
func Bool(b bool) Arg {
	return argFunc(func(slot *etree.Element) { slot.SetText(entity.BoolConverter.Encode(b)) })
}

// Time passes t in the wire timestamp format.
func Time(t time.Time) Arg {
	return argFunc(func(slot *etree.Element) { slot.SetText(entity.DateTimeConverter.Encode(t)) })
}

// Strings passes ss as an array, one item element per string.
func Strings(ss []string) Arg {
	return argFunc(func(slot *etree.Element) {
		for _, s := range ss {
			slot.CreateElement(entity.ItemTag).SetText(s)
		}
	})
}

// Entity passes e expanded through its schema. A nil e is sent as xsi:nil.
func Entity[T any](s *entity.Schema[T], e *T) Arg {
	return argFunc(func(slot *etree.Element) {
		if e == nil {
			slot.CreateAttr("xsi:nil", "true")
			return
		}
		entity.Serialize(s, e, slot)
	})
}
