// Package redact masks Indian personal identifiers (PAN, Aadhaar) in any
// text-bearing structure before it leaves the pipeline. Masking is total,
// never partial, and runs over every string field generically so fields
// added to the schema later stay covered.
package redact

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// Mask tokens are fixed literals distinguishable from real data
const (
	MaskPAN     = "[REDACTED_PAN]"
	MaskAadhaar = "[REDACTED_UID]"
)

// ErrIncomplete means a post-check still found an unmasked identifier.
// It is fatal: callers must abort output rather than emit the data.
var ErrIncomplete = errors.New("redaction incomplete: unmasked identifier present")

var (
	// PAN: 5 letters, 4 digits, 1 letter, word-boundary delimited
	panRe = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	// Aadhaar: exactly 12 digits, optionally grouped 4-4-4 with spaces or hyphens
	aadhaarRe = regexp.MustCompile(`\b\d{4}[ -]?\d{4}[ -]?\d{4}\b`)
)

// Text masks every PAN- and Aadhaar-shaped substring in s.
// Applying Text twice yields the same result as once.
func Text(s string) string {
	s = panRe.ReplaceAllString(s, MaskPAN)
	s = aadhaarRe.ReplaceAllString(s, MaskAadhaar)
	return s
}

// Contains reports whether s still carries an unmasked identifier
func Contains(s string) bool {
	return panRe.MatchString(s) || aadhaarRe.MatchString(s)
}

// Struct walks v and masks every reachable string field in place.
// v must be a non-nil pointer; nested pointers, structs, slices, arrays,
// maps and interface values holding strings are all covered.
func Struct(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("redact: need a non-nil pointer, got %T", v)
	}
	walk(rv.Elem(), func(s string) string { return Text(s) })
	return nil
}

// Verify walks v and returns ErrIncomplete if any string field still
// matches an identifier pattern. Used as the pipeline's final post-check.
func Verify(v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	leaked := false
	walk(rv, func(s string) string {
		if Contains(s) {
			leaked = true
		}
		return s
	})
	if leaked {
		return ErrIncomplete
	}
	return nil
}

// walk applies fn to every string reachable from rv, writing the result
// back when the value is settable.
func walk(rv reflect.Value, fn func(string) string) {
	switch rv.Kind() {
	case reflect.String:
		out := fn(rv.String())
		if rv.CanSet() {
			rv.SetString(out)
		}
	case reflect.Ptr:
		if !rv.IsNil() {
			walk(rv.Elem(), fn)
		}
	case reflect.Interface:
		if rv.IsNil() {
			return
		}
		elem := rv.Elem()
		if elem.Kind() == reflect.String {
			out := fn(elem.String())
			if rv.CanSet() {
				rv.Set(reflect.ValueOf(out))
			}
			return
		}
		// Non-string interface contents are walked via an addressable copy
		// so nested fields can be rewritten, then stored back.
		if rv.CanSet() {
			tmp := reflect.New(elem.Type())
			tmp.Elem().Set(elem)
			walk(tmp.Elem(), fn)
			rv.Set(tmp.Elem())
		} else {
			walk(elem, fn)
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if rv.Type().Field(i).IsExported() {
				walk(rv.Field(i), fn)
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			walk(rv.Index(i), fn)
		}
	case reflect.Map:
		for _, key := range rv.MapKeys() {
			val := rv.MapIndex(key)
			tmp := reflect.New(val.Type())
			tmp.Elem().Set(val)
			walk(tmp.Elem(), fn)
			rv.SetMapIndex(key, tmp.Elem())
		}
	}
}
