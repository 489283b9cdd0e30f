package answers

// Directory defaults offered by the structure prompts.
const (
	DefaultCSSDir    = "css"
	DefaultJSDir     = "js"
	DefaultImgDir    = "images"
	DefaultFontsDir  = "fonts"
	DefaultCSSPreDir = "sass"
)
