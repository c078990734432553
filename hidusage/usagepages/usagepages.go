// Package usagepages maps the named HID usage constants accepted by the
// record DSL onto their 16-bit usage page and usage ID codes.
package usagepages

import (
	"github.com/iancoleman/strcase"
)

type UsageInfo struct {
	ID   uint16
	Name string
}

type PageInfo struct {
	Code   uint16
	Name   string
	usages map[string]UsageInfo
}

var pageNameMap = map[string]uint16{}

func init() {
	for code, page := range pages {
		pageNameMap[page.Name] = code
	}
}

// Normalize converts an identifier to the canonical SCREAMING_SNAKE form
// used by the tables, so GenericDesktop and GENERIC_DESKTOP both resolve.
func Normalize(name string) string {
	return strcase.ToScreamingSnake(name)
}

func PageByName(name string) (PageInfo, bool) {
	code, ok := pageNameMap[Normalize(name)]
	if !ok {
		return PageInfo{}, false
	}
	return pages[code], true
}

func PageByCode(code uint16) (PageInfo, bool) {
	page, ok := pages[code]
	return page, ok
}

func (p PageInfo) UsageByName(name string) (UsageInfo, bool) {
	info, ok := p.usages[Normalize(name)]
	return info, ok
}

func (p PageInfo) UsageByID(id uint16) (UsageInfo, bool) {
	for _, info := range p.usages {
		if info.ID == id {
			return info, true
		}
	}
	return UsageInfo{}, false
}
