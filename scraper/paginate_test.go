package scraper

import "testing"

func TestControlState_Disabled(t *testing.T) {
	tests := []struct {
		name string
		st   controlState
		want bool
	}{
		{"all clear", controlState{Cls: "andes-pagination__link"}, false},
		{"own disabled class", controlState{Cls: "andes-pagination__link disabled"}, true},
		{"aria disabled", controlState{Aria: "true"}, true},
		{"aria false is enabled", controlState{Aria: "false"}, false},
		{"disabled attribute", controlState{Dis: true}, true},
		{"parent li disabled class", controlState{LiCls: "disabled"}, true},
		{"andes disabled modifier on li", controlState{LiCls: "andes-pagination__button andes-pagination__button--disabled"}, true},
		{"andes next modifier alone", controlState{LiCls: "andes-pagination__button--next"}, false},
		{"substring must not match", controlState{Cls: "not-disabled-style"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.disabled(); got != tt.want {
				t.Errorf("disabled() = %v, want %v for %+v", got, tt.want, tt.st)
			}
		})
	}
}

func TestHasClass(t *testing.T) {
	if !hasClass("a b  c", "b") {
		t.Error("expected class b to be found")
	}
	if hasClass("ab c", "a") {
		t.Error("class matching must be whole-token")
	}
	if hasClass("", "a") {
		t.Error("empty attribute has no classes")
	}
}
