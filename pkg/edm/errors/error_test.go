package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestEdmErrorString(t *testing.T) {
	loc := Location{File: "sales.yaml", Line: 3, Column: 5}

	tests := []struct {
		name     string
		location Location
		severity Severity
		want     string
	}{
		{"bare", Location{}, SeverityUndefined, "KeyMissingOnEntityType : missing key"},
		{"location", loc, SeverityUndefined, "KeyMissingOnEntityType : missing key : sales.yaml:3:5"},
		{"severity", Location{}, SeverityWarning, "KeyMissingOnEntityType : missing key : Warning"},
		{"location and severity", loc, SeverityError, "KeyMissingOnEntityType : missing key : sales.yaml:3:5 : Error"},
		{"location without line", Location{File: "sales.yaml"}, SeverityError, "KeyMissingOnEntityType : missing key : Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewWithSeverity(tt.location, KeyMissingOnEntityType, "missing key", tt.severity)
			if got := err.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDefaultsToError(t *testing.T) {
	err := New(Location{}, InvalidName, "bad name")
	if err.Severity != SeverityError {
		t.Errorf("Severity = %v, want Error", err.Severity)
	}
	if err.Extensions == nil {
		t.Error("Extensions should be initialised")
	}
}

func TestIsCritical(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrorCode(241), false},
		{InterfaceCriticalPropertyValueMustNotBeNull, true},
		{InterfaceCriticalEnumPropertyValueOutOfRange, true},
		{InterfaceCriticalCycleInTypeHierarchy, true},
		{ErrorCode(249), false},
		{BadUnresolvedType, false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := IsCritical(tt.code); got != tt.want {
				t.Errorf("IsCritical(%d) = %v, want %v", tt.code, got, tt.want)
			}
			if got := New(Location{}, tt.code, "").IsCritical(); got != tt.want {
				t.Errorf("EdmError.IsCritical() for %d = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
	if InterfaceCriticalPropertyValueMustNotBeNull != 242 || InterfaceCriticalCycleInTypeHierarchy != 248 {
		t.Error("interface-critical range moved")
	}
}

func TestSuggestion(t *testing.T) {
	err := New(Location{}, BadUnresolvedType, "no such type")
	if got := err.Suggestion(); got != "" {
		t.Errorf("Suggestion() = %q, want empty", got)
	}
	err.WithExtension(ExtensionSuggestion, "Did you mean 'Sales.Address'?")
	if got := err.Suggestion(); got != "Did you mean 'Sales.Address'?" {
		t.Errorf("Suggestion() = %q", got)
	}

	var bare EdmError
	bare.WithExtension("rule", "custom")
	if bare.Extensions["rule"] != "custom" {
		t.Errorf("WithExtension on a zero error lost the entry: %v", bare.Extensions)
	}
}

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	if list.HasErrors() || list.ToError() != nil || list.Error() != "" {
		t.Fatal("empty list should report no errors")
	}

	list.AddError(Location{}, InvalidName, "bad name")
	list.Add(
		New(Location{}, KeyMissingOnEntityType, "missing key"),
		New(Location{}, InvalidName, "another bad name"),
	)

	if list.Count() != 3 {
		t.Errorf("Count() = %d, want 3", list.Count())
	}
	if got := len(list.ByCode(InvalidName)); got != 2 {
		t.Errorf("ByCode(InvalidName) returned %d errors, want 2", got)
	}
	if list.ByCode(AlreadyDefined) != nil {
		t.Error("ByCode for an absent code should be nil")
	}
	if !list.HasCode(KeyMissingOnEntityType) || list.HasCode(AlreadyDefined) {
		t.Error("HasCode mismatch")
	}
	if list.HasCriticalErrors() {
		t.Error("no critical error was added")
	}
	if !strings.HasPrefix(list.Error(), "Found 3 error(s):\n") {
		t.Errorf("Error() = %q", list.Error())
	}

	list.AddError(Location{}, InterfaceCriticalKindValueMismatch, "kind mismatch")
	if !list.HasCriticalErrors() {
		t.Error("HasCriticalErrors() = false after adding a critical error")
	}

	var target *ErrorList
	if !stderrors.As(list.ToError(), &target) || target != list {
		t.Error("ToError() should return the list itself")
	}
}

func TestParseErrorCode(t *testing.T) {
	for _, code := range Codes() {
		got, ok := ParseErrorCode(code.String())
		if !ok || got != code {
			t.Errorf("ParseErrorCode(%q) = %d, %v", code.String(), got, ok)
		}
	}
	if _, ok := ParseErrorCode("NoSuchCode"); ok {
		t.Error("ParseErrorCode accepted an unknown name")
	}
	if got := ErrorCode(9999).String(); got != "ErrorCode(9999)" {
		t.Errorf("String() of an unknown code = %q", got)
	}
}

func TestCatalogMessage(t *testing.T) {
	if got := DefaultCatalog.Message(BadUnresolvedOperation, "Sales.Run"); got != "The operation 'Sales.Run' could not be found." {
		t.Errorf("Message() = %q", got)
	}
	if got := DefaultCatalog.Message(BadUnresolvedEntitySet, "Ordrs"); got != "The entity set 'Ordrs' could not be found." {
		t.Errorf("Message() = %q", got)
	}

	custom := DefaultCatalog.Merge(map[ErrorCode]string{InvalidName: "bad: %s"})
	if got := custom.Message(InvalidName, "9x"); got != "bad: 9x" {
		t.Errorf("merged Message() = %q", got)
	}
	if DefaultCatalog.Message(InvalidName, "9x") == "bad: 9x" {
		t.Error("Merge modified the receiver")
	}
	if got := (TemplateCatalog{}).Message(InvalidName); got != "InvalidName" {
		t.Errorf("Message() without template = %q", got)
	}
}

func TestSuggestName(t *testing.T) {
	candidates := []string{"Sales.Address", "Sales.Customer"}
	if got := SuggestName("Sales.Adress", candidates); got != "Did you mean 'Sales.Address'?" {
		t.Errorf("SuggestName() = %q", got)
	}
	if got := SuggestName("Inventory.Warehouse", candidates); got != "" {
		t.Errorf("SuggestName() for a distant name = %q", got)
	}
	if got := SuggestName("X", nil); got != "" {
		t.Errorf("SuggestName() without candidates = %q", got)
	}
}
