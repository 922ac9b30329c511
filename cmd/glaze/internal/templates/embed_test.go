package templates

import (
	"strings"
	"testing"
	"text/template"
)

func TestInitTemplatesParse(t *testing.T) {
	for _, name := range []string{
		"init/go.mod.tmpl",
		"init/main.go.tmpl",
		"init/glaze.yaml.tmpl",
	} {
		content, err := ReadFile(name)
		if err != nil {
			t.Fatalf("ReadFile(%q): %v", name, err)
		}
		if len(content) == 0 {
			t.Errorf("%s is empty", name)
		}
		if _, err := template.New(name).Parse(string(content)); err != nil {
			t.Errorf("%s does not parse: %v", name, err)
		}
	}
}

func TestMainTemplateReferencesRunner(t *testing.T) {
	content, err := ReadFile("init/main.go.tmpl")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "app.Main(site)") {
		t.Error("main template does not hand control to app.Main")
	}
}
