package templates

import (
	"embed"
	"html/template"
	"strconv"

	"github.com/Bombastion/taproom-offering-engine/utils"
)

//go:embed html/*.html
var files embed.FS

// Load parses the embedded page templates. Each file defines one named
// template: index, breweryList, containerList, itemList, menuList, menuPrint.
func Load() (*template.Template, error) {
	return template.New("pages").Funcs(Funcs()).ParseFS(files, "html/*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"dataURI": dataURI,
		"str":     str,
		"abv":     abv,
		"num":     num,
	}
}

// dataURI makes a stored base64 logo usable as an img src.
func dataURI(b64 *string) template.URL {
	if b64 == nil {
		return ""
	}
	return template.URL(utils.DataURI(*b64))
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func abv(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}

func num(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
