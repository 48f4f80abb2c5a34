package encode

type EncodeOption func(*EncState)

// EncodeColors colors output with c.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

// Indent sets the string written once per depth. The default is a tab.
func Indent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

// EncodeURLs controls whether top-level nodes are wrapped in a UrlConfig
// node giving their origin. It defaults to true.
func EncodeURLs(v bool) EncodeOption {
	return func(es *EncState) { es.urls = v }
}
