package themes

import (
	"github.com/arthur-debert/dotprofile/pkg/errors"
	"github.com/beevik/etree"
)

// ValidatePlist checks that data is an XML property list whose top-level
// value is a dictionary with well-formed key/value pairs, which is the
// shape of iTerm2 and Terminal.app theme files.
func ValidatePlist(data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return errors.Wrap(err, errors.ErrThemeInvalid, "theme is not valid XML")
	}

	root := doc.Root()
	if root == nil || root.Tag != "plist" {
		return errors.New(errors.ErrThemeInvalid, "theme root element is not <plist>")
	}
	dict := root.SelectElement("dict")
	if dict == nil {
		return errors.New(errors.ErrThemeInvalid, "theme plist has no top-level <dict>")
	}

	children := dict.ChildElements()
	if len(children)%2 != 0 {
		return errors.New(errors.ErrThemeInvalid, "theme dictionary has a key without a value")
	}
	for i := 0; i < len(children); i += 2 {
		if children[i].Tag != "key" {
			return errors.Newf(errors.ErrThemeInvalid, "expected <key>, found <%s>", children[i].Tag)
		}
	}
	return nil
}
