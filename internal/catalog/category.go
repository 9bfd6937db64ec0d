package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"discshelf/internal/textutil"
)

// CategoryID identifies one of the four fixed catalogue categories.
type CategoryID string

const (
	DVD             CategoryID = "dvd"
	Bluray          CategoryID = "bluray"
	CollectorBluray CategoryID = "collectorBluray"
	HDD             CategoryID = "hdd"
)

// Field keys shared across categories.
const (
	FieldSerial   = "serial"
	FieldTitle    = "title"
	FieldRemark   = "remark"
	FieldDisk     = "disk"
	FieldSubtitle = "subtitle"
	FieldGenre    = "genre"
)

// OrderKind selects the comparator a category sorts with.
type OrderKind int

const (
	// OrderInteger sorts by the numeric value of a plain digit serial.
	OrderInteger OrderKind = iota
	// OrderRange sorts "a-b" serials by (a, b).
	OrderRange
	// OrderDisk sorts by disk ordinal, then serial within the disk.
	OrderDisk
)

func (k OrderKind) String() string {
	switch k {
	case OrderRange:
		return "range"
	case OrderDisk:
		return "disk"
	default:
		return "integer"
	}
}

// FieldDefinition describes one column of a category sheet. Label is the
// canonical heading written on save; Aliases are additional headings
// accepted on read.
type FieldDefinition struct {
	Key      string
	Label    string
	Aliases  []string
	Required bool
}

// Category is the schema of one catalogue sheet.
type Category struct {
	ID           CategoryID
	Label        string
	SheetName    string
	SheetAliases []string
	Fields       []FieldDefinition
	// SerialPattern is nil when the category declares no serial format.
	SerialPattern *regexp.Regexp
	// SearchField names the field shown as the headline of a search hit.
	SearchField string
	Order       OrderKind
}

var (
	serialAliases   = []string{"序号", "编号", "号码", "碟号", "no", "no.", "编码"}
	discTitleAlias  = []string{"影碟名称", "电影名称", "影片名称", "片名", "名称", "标题"}
	remarkAliases   = []string{"备注", "说明", "附注"}
	diskAliases     = []string{"硬盘", "硬盘名称", "硬盘编号", "所在硬盘"}
	subtitleAliases = []string{"字幕", "中文字幕", "字幕语言"}
	genreAliases    = []string{"类型", "类别", "分类", "题材"}

	integerSerial = regexp.MustCompile(`^\d+$`)
	rangeSerial   = regexp.MustCompile(`^\d+-\d+$`)
)

func discFields() []FieldDefinition {
	return []FieldDefinition{
		{Key: FieldSerial, Label: "编号", Aliases: serialAliases, Required: true},
		{Key: FieldTitle, Label: "影碟名称", Aliases: discTitleAlias, Required: true},
		{Key: FieldRemark, Label: "备注", Aliases: remarkAliases},
	}
}

var categories = []Category{
	{
		ID:            DVD,
		Label:         "DVD",
		SheetName:     "DVD目录",
		SheetAliases:  []string{"DVD", "DVD影碟"},
		Fields:        discFields(),
		SerialPattern: integerSerial,
		SearchField:   FieldTitle,
		Order:         OrderInteger,
	},
	{
		ID:            Bluray,
		Label:         "蓝光",
		SheetName:     "蓝光影碟目录",
		SheetAliases:  []string{"蓝光", "蓝光目录", "Blu-ray"},
		Fields:        discFields(),
		SerialPattern: rangeSerial,
		SearchField:   FieldTitle,
		Order:         OrderRange,
	},
	{
		ID:            CollectorBluray,
		Label:         "精装蓝光",
		SheetName:     "精装蓝光影碟目录",
		SheetAliases:  []string{"精装蓝光", "精装蓝光目录"},
		Fields:        discFields(),
		SerialPattern: integerSerial,
		SearchField:   FieldTitle,
		Order:         OrderInteger,
	},
	{
		ID:           HDD,
		Label:        "硬盘电影",
		SheetName:    "硬盘电影目录",
		SheetAliases: []string{"硬盘电影", "硬盘目录"},
		Fields: []FieldDefinition{
			{Key: FieldDisk, Label: "硬盘", Aliases: diskAliases, Required: true},
			{Key: FieldSerial, Label: "序号", Aliases: serialAliases, Required: true},
			{Key: FieldTitle, Label: "电影名称", Aliases: discTitleAlias, Required: true},
			{Key: FieldSubtitle, Label: "字幕", Aliases: subtitleAliases},
			{Key: FieldGenre, Label: "类型", Aliases: genreAliases},
			{Key: FieldRemark, Label: "备注", Aliases: remarkAliases},
		},
		SerialPattern: integerSerial,
		SearchField:   FieldTitle,
		Order:         OrderDisk,
	},
}

// Categories returns the four categories in their fixed sheet order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IDs returns the category identifiers in sheet order.
func IDs() []CategoryID {
	ids := make([]CategoryID, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}

// Lookup returns the category with the given id.
func Lookup(id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// MustLookup is Lookup for ids known at compile time.
func MustLookup(id CategoryID) Category {
	c, ok := Lookup(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown category %q", id))
	}
	return c
}

// ResolveCategory accepts a category id, display label, or sheet name,
// ignoring case and surrounding whitespace.
func ResolveCategory(value string) (Category, error) {
	key := textutil.NormalizeHeader(value)
	if key == "" {
		return Category{}, fmt.Errorf("category is required")
	}
	for _, c := range categories {
		candidates := append([]string{string(c.ID), c.Label, c.SheetName}, c.SheetAliases...)
		for _, candidate := range candidates {
			if textutil.NormalizeHeader(candidate) == key {
				return c, nil
			}
		}
	}
	return Category{}, fmt.Errorf("unknown category %q (expected one of %s)", value, strings.Join(idStrings(), ", "))
}

func idStrings() []string {
	out := make([]string, 0, len(categories))
	for _, id := range IDs() {
		out = append(out, string(id))
	}
	return out
}

// FieldKeys returns the field keys in declared order.
func (c Category) FieldKeys() []string {
	keys := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Labels returns the canonical column headings in declared order.
func (c Category) Labels() []string {
	labels := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		labels[i] = f.Label
	}
	return labels
}

// Field returns the definition for key.
func (c Category) Field(key string) (FieldDefinition, bool) {
	for _, f := range c.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldDefinition{}, false
}

// HasField reports whether key belongs to the category.
func (c Category) HasField(key string) bool {
	_, ok := c.Field(key)
	return ok
}

// HeaderTokens returns the normalized labels and aliases of every field.
func (c Category) HeaderTokens() map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, f := range c.Fields {
		tokens[textutil.NormalizeHeader(f.Label)] = struct{}{}
		for _, alias := range f.Aliases {
			tokens[textutil.NormalizeHeader(alias)] = struct{}{}
		}
	}
	delete(tokens, "")
	return tokens
}

// SheetNames returns the canonical sheet name followed by its aliases.
func (c Category) SheetNames() []string {
	return append([]string{c.SheetName}, c.SheetAliases...)
}
