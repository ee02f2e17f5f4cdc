package template

import (
	"reflect"
	"testing"

	"github.com/promptkit/promptkit/value"
)

func TestParseTypeInference(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     VarType
	}{
		{name: "boolean prefix", template: "{{IS_ACTIVE}}", want: TypeBoolean},
		{name: "has prefix", template: "{{HAS_LICENSE}}", want: TypeBoolean},
		{name: "amount suffix", template: "{{TOTAL_AMOUNT}}", want: TypeNumber},
		{name: "count suffix", template: "{{ITEM_COUNT}}", want: TypeNumber},
		{name: "date suffix", template: "{{DUE_DATE}}", want: TypeDate},
		{name: "updated suffix", template: "{{LAST_UPDATED}}", want: TypeDate},
		{name: "status suffix", template: "{{TICKET_STATUS}}", want: TypeSelect},
		{name: "level suffix", template: "{{PRIORITY_LEVEL}}", want: TypeSelect},
		{name: "plain name", template: "{{SUBJECT}}", want: TypeText},
		{name: "hint beats name", template: "{{IS_ACTIVE:text}}", want: TypeText},
		{name: "int alias", template: "{{RETRIES:int}}", want: TypeNumber},
		{name: "datetime alias", template: "{{MEETING:datetime}}", want: TypeDate},
		{name: "choice alias", template: "{{FLAVOR:choice}}", want: TypeSelect},
		{name: "str alias", template: "{{NICKNAME:str}}", want: TypeText},
		{name: "unknown hint", template: "{{SUBJECT:fancy}}", want: TypeText},
		{name: "boolean beats date", template: "{{IS_DUE_DATE}}", want: TypeBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := Parse(tt.template).Variables
			if len(vars) != 1 {
				t.Fatalf("expected 1 variable, got %d", len(vars))
			}
			if vars[0].Type != tt.want {
				t.Fatalf("expected type %s, got %s", tt.want, vars[0].Type)
			}
		})
	}
}

func TestParseOrderAndDuplicates(t *testing.T) {
	vars := Parse("{{NAME}} {{NAME}}").Variables
	if len(vars) != 1 {
		t.Fatalf("expected duplicate collapse to 1 variable, got %d", len(vars))
	}

	vars = Parse("{{A:text}} {{B}} {{A:number}}").Variables
	if len(vars) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(vars))
	}
	if vars[0].Name != "A" || vars[1].Name != "B" {
		t.Fatalf("expected first-occurrence order A, B; got %s, %s", vars[0].Name, vars[1].Name)
	}
	if vars[0].Type != TypeNumber {
		t.Fatalf("expected latest occurrence to win the type, got %s", vars[0].Type)
	}

	vars = Parse("{{name}} {{NAME}}").Variables
	if len(vars) != 1 || vars[0].Name != "NAME" {
		t.Fatalf("expected case-normalized collapse, got %+v", vars)
	}
}

func TestParseOptionalAndDefaults(t *testing.T) {
	tests := []struct {
		name         string
		template     string
		wantRequired bool
		wantDefault  value.Value
	}{
		{name: "plain is required", template: "{{NAME}}", wantRequired: true},
		{name: "marker on name", template: "{{NAME?}}", wantRequired: false},
		{name: "marker on hint", template: "{{NAME:text?}}", wantRequired: false},
		{name: "text default", template: "{{GREETING:text:Hello}}", wantRequired: false, wantDefault: value.Text("Hello")},
		{name: "number default", template: "{{RETRIES:number:3}}", wantRequired: false, wantDefault: value.Number(3)},
		{name: "boolean default", template: "{{NOTIFY:bool:yes}}", wantRequired: false, wantDefault: value.Bool(true)},
		{name: "boolean off", template: "{{NOTIFY:bool:off}}", wantRequired: false, wantDefault: value.Bool(false)},
		{name: "bad boolean stays required", template: "{{NOTIFY:bool:maybe}}", wantRequired: true},
		{name: "bad number stays required", template: "{{RETRIES:number:lots}}", wantRequired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vars := Parse(tt.template).Variables
			if len(vars) != 1 {
				t.Fatalf("expected 1 variable, got %d", len(vars))
			}
			v := vars[0]
			if v.Required != tt.wantRequired {
				t.Fatalf("expected required=%v, got %v", tt.wantRequired, v.Required)
			}
			if !reflect.DeepEqual(v.Default, tt.wantDefault) {
				t.Fatalf("expected default %#v, got %#v", tt.wantDefault, v.Default)
			}
		})
	}
}

func TestParseDateDefault(t *testing.T) {
	vars := Parse("{{START:date:2024-03-01}}").Variables
	if len(vars) != 1 {
		t.Fatalf("expected 1 variable, got %d", len(vars))
	}
	d := vars[0].Default
	if d.Kind() != value.KindDate {
		t.Fatalf("expected date default, got %s", d.Kind())
	}
	y, m, day := d.Date().Date()
	if y != 2024 || m != 3 || day != 1 {
		t.Fatalf("unexpected date default: %v", d.Date())
	}

	vars = Parse("{{START:date:not-a-date}}").Variables
	if !vars[0].Required {
		t.Fatal("expected unparseable date default to leave the variable required")
	}
}

func TestParseBlockTags(t *testing.T) {
	res := Parse("{{#EACH ITEMS}}{{ITEM}}{{/EACH}}{{#IF IS_URGENT}}!{{/IF}}")
	if len(res.Variables) != 3 {
		t.Fatalf("expected 3 variables, got %+v", res.Variables)
	}
	if res.Variables[0].Name != "ITEMS" || res.Variables[1].Name != "ITEM" || res.Variables[2].Name != "IS_URGENT" {
		t.Fatalf("unexpected order: %+v", res.Variables)
	}
	if res.Variables[2].Type != TypeBoolean {
		t.Fatalf("expected boolean for IS_URGENT, got %s", res.Variables[2].Type)
	}
}

func TestParsePlaceholderHints(t *testing.T) {
	tests := []struct {
		template string
		want     string
	}{
		{template: "{{NAME}}", want: "Enter Name"},
		{template: "{{USER_NAME}}", want: "Enter User name"},
		{template: "{{TOTAL_AMOUNT}}", want: "Enter Total amount"},
		{template: "{{IS_ACTIVE}}", want: "Is active (Yes/No)"},
		{template: "{{DUE_DATE}}", want: "Select Due date"},
		{template: "{{TICKET_STATUS}}", want: "Choose Ticket status"},
	}

	for _, tt := range tests {
		vars := Parse(tt.template).Variables
		if len(vars) != 1 {
			t.Fatalf("expected 1 variable for %q, got %d", tt.template, len(vars))
		}
		if vars[0].Placeholder != tt.want {
			t.Fatalf("expected hint %q, got %q", tt.want, vars[0].Placeholder)
		}
	}
}

func TestParseSearchText(t *testing.T) {
	got := Parse("Hello {{NAME}}, your order {{ORDER_ID}} ships").SearchText
	if got != "Hello , your order ships" {
		t.Fatalf("unexpected search text: %q", got)
	}

	got = Parse("line one\n{{X}}\nline two").SearchText
	if got != "line one line two" {
		t.Fatalf("unexpected multiline search text: %q", got)
	}
}

func TestParseDegradesGracefully(t *testing.T) {
	if vars := Parse("Hello {{NAME}").Variables; len(vars) != 0 {
		t.Fatalf("expected no variables from a dangling brace, got %+v", vars)
	}
	if vars := Parse("{{}}").Variables; len(vars) != 0 {
		t.Fatalf("expected empty placeholder to be skipped, got %+v", vars)
	}
	if vars := Parse("{{:text}}").Variables; len(vars) != 0 {
		t.Fatalf("expected empty name to be skipped, got %+v", vars)
	}

	// Excess colon parts are ignored rather than fatal.
	vars := Parse("{{A:text:dflt:extra}}").Variables
	if len(vars) != 1 || vars[0].Default.Text() != "dflt" {
		t.Fatalf("expected excess parts to be ignored, got %+v", vars)
	}
}

func TestParseIdempotent(t *testing.T) {
	const tmpl = "{{#EACH ITEMS}}{{ITEM}} {{PRICE:currency}}{{/EACH}} {{IS_DONE}}"
	first := Parse(tmpl)
	second := Parse(tmpl)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected identical parse results for identical input")
	}
}
