// Package encode renders patched databases.
//
// # Usage
//
//	// ConfigCache style text, one UrlConfig per top-level node
//	err := encode.Encode(db, os.Stdout)
//
//	// with colors
//	err := encode.Encode(db, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
//	// JSON grouped by origin file
//	d, err := encode.MarshalJSON(db)
//
// # Related Packages
//
//   - github.com/signadot/cfgpatch/ir - the database and its nodes
package encode
