package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestEnabledFieldsFollowsFixedOrder(t *testing.T) {
	requested := map[FieldType]bool{
		FieldAltText:               true,
		FieldTitle:                 true,
		FieldSKU:                   true,
		FieldType("unknown_field"): true,
		FieldDescription:           false,
	}

	got := EnabledFields(requested)
	want := []FieldType{FieldTitle, FieldSKU, FieldAltText}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("EnabledFields() = %v, want %v", got, want)
	}
}

func TestEnabledFieldsEmpty(t *testing.T) {
	if got := EnabledFields(nil); got != nil {
		t.Fatalf("EnabledFields(nil) = %v, want nil", got)
	}
	if got := EnabledFields(map[FieldType]bool{FieldType("bogus"): true}); got != nil {
		t.Fatalf("EnabledFields(bogus) = %v, want nil", got)
	}
}

func TestTruncateItemError(t *testing.T) {
	short := "model refused"
	if got := TruncateItemError(short); got != short {
		t.Fatalf("TruncateItemError(short) = %q", got)
	}

	long := strings.Repeat("x", 900)
	got := TruncateItemError(long)
	if len(got) != 500 {
		t.Fatalf("len = %d, want 500", len(got))
	}
	if !strings.HasPrefix(long, got) {
		t.Fatal("truncated message is not a prefix of the original")
	}
}
