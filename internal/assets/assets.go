package assets

// Built-in asset names.
const (
	DefaultStyleName    = "default"
	DefaultTemplateName = "index"
)

// Page is the data handed to homepage templates.
type Page struct {
	Title      string // <title> and <h1> text
	Tagline    string // optional subtitle under the heading
	Stylesheet string // href of the site stylesheet, relative to the root
}
