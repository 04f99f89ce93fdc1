package rendered

import (
	"reflect"
	"regexp"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/pkg/validation"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FieldType 필드 값을 읽는 방식입니다.
type FieldType string

const (
	TypeText       FieldType = "text"
	TypeHTML       FieldType = "html"
	TypeAttribute  FieldType = "attribute"
	TypeRegex      FieldType = "regex"
	TypeNestedList FieldType = "nested_list"
)

// 기본 스키마의 필드 이름 중 추출기가 직접 사용하는 것들입니다.
const (
	FieldSizesContainer = "sizes_container"
	FieldJSONLD         = "json_ld_data"
	FieldHighlight      = "ProductHighlight"
	FieldAvailableSizes = "AvailableSizes"
)

// Field 추출할 값 하나의 정의입니다.
//
// Selectors는 순서대로 시도하며 요소를 하나라도 찾은 첫 번째 셀렉터를 사용합니다.
// 모든 셀렉터가 실패하면 Default를 사용합니다. 상품 페이지의 클래스 이름은 빌드마다 바뀌므로
// 셀렉터는 코드가 아닌 교체 가능한 설정으로 다룹니다.
type Field struct {
	Name      string    `json:"name"`
	Selectors []string  `json:"selectors"`
	Type      FieldType `json:"type"`
	Attribute string    `json:"attribute,omitempty"`
	Pattern   string    `json:"pattern,omitempty"`
	Multiple  bool      `json:"multiple,omitempty"`
	Default   string    `json:"default,omitempty"`

	// Fields nested_list 타입에서 각 요소에 적용할 하위 필드
	Fields []Field `json:"fields,omitempty"`

	pattern *regexp.Regexp
}

// Schema 페이지에서 추출할 필드 목록입니다.
type Schema struct {
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Fields  []Field `json:"fields"`
}

// compile 정규식 패턴을 미리 컴파일하고 필드 정의를 검사합니다.
func (s *Schema) compile() error {
	return compileFields(s.Fields, "")
}

func compileFields(fields []Field, parent string) error {
	for i := range fields {
		f := &fields[i]
		path := parent + f.Name

		switch f.Type {
		case TypeText, TypeHTML:
		case TypeAttribute:
			if f.Attribute == "" {
				return apperrors.Newf(apperrors.InvalidInput, "추출 스키마 필드(%s)에 attribute가 없습니다", path)
			}
		case TypeRegex:
			re, err := regexp.Compile(f.Pattern)
			if err != nil {
				return apperrors.Wrapf(err, apperrors.InvalidInput, "추출 스키마 필드(%s)의 정규식이 올바르지 않습니다", path)
			}
			if re.NumSubexp() < 1 {
				return apperrors.Newf(apperrors.InvalidInput, "추출 스키마 필드(%s)의 정규식에 캡처 그룹이 없습니다", path)
			}
			f.pattern = re
		case TypeNestedList:
			if err := compileFields(f.Fields, path+"."); err != nil {
				return err
			}
		default:
			return apperrors.Newf(apperrors.InvalidInput, "추출 스키마 필드(%s)의 타입(%q)을 지원하지 않습니다", path, f.Type)
		}

		if f.Name == "" {
			return apperrors.New(apperrors.InvalidInput, "추출 스키마에 이름 없는 필드가 있습니다")
		}
	}
	return nil
}

// LoadSchema JSON 파일에서 추출 스키마를 읽습니다.
// selectors는 문자열 하나 또는 문자열 배열로 쓸 수 있습니다.
func LoadSchema(path string) (*Schema, error) {
	if err := validation.ValidateFile(path); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "추출 스키마 파일을 열 수 없습니다")
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "추출 스키마 파일(%s)을 읽을 수 없습니다", path)
	}

	var schema Schema
	err := k.UnmarshalWithConf("", &schema, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       singleStringToSliceHook,
			Result:           &schema,
			TagName:          "json",
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		},
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "추출 스키마 파일(%s)의 형식이 올바르지 않습니다", path)
	}

	if len(schema.Fields) == 0 {
		return nil, apperrors.Newf(apperrors.InvalidInput, "추출 스키마 파일(%s)에 필드가 없습니다", path)
	}
	if err := schema.compile(); err != nil {
		return nil, err
	}

	return &schema, nil
}

// singleStringToSliceHook 문자열 하나를 원소가 하나인 슬라이스로 바꿉니다.
// CSS 셀렉터에는 쉼표가 들어갈 수 있으므로 구분자로 나누지 않습니다.
func singleStringToSliceHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to.Kind() == reflect.Slice && to.Elem().Kind() == reflect.String {
		return []string{data.(string)}, nil
	}
	return data, nil
}

var _ mapstructure.DecodeHookFuncType = singleStringToSliceHook

// DefaultSchema 내장 추출 스키마를 반환합니다. 호출할 때마다 새 값을 만듭니다.
func DefaultSchema() *Schema {
	s := &Schema{
		Name:    "Zalando Product",
		Version: "2025-06",
		Fields: []Field{
			{Name: "page_title", Selectors: []string{"title"}, Type: TypeText},
			{
				Name: "product_name",
				Selectors: []string{
					"[data-testid='product-name']",
					"h1[data-id='productTitle']",
					"h1._1PY2_7",
					"h1._0xLoFW",
					"h1",
				},
				Type: TypeText,
			},
			{
				Name: "product_brand",
				Selectors: []string{
					"[data-testid='brand-link']",
					"a[data-testid='brand-link']",
					"a[title*='Brand']",
					"a._0xLoFW",
				},
				Type: TypeText,
			},
			{
				Name: "product_price",
				Selectors: []string{
					"[data-testid='price-amount']",
					"span._0xLoFW._7CKbLS",
					".price",
					"span[data-id='price']",
				},
				Type: TypeText,
			},
			{
				Name: FieldSizesContainer,
				Selectors: []string{
					"[data-testid='sizes-container']",
					".size-selector",
					"div[data-id='sizes']",
					"div.MU8FaS",
				},
				Type: TypeHTML,
			},
			{
				Name: "all_size_buttons",
				Selectors: []string{
					"button[data-testid='size-picker-trigger']",
					".size-picker-trigger",
					"#picker-trigger",
					"button[data-id='size-select']",
				},
				Type:     TypeText,
				Multiple: true,
			},
			{
				Name: "size_options",
				Selectors: []string{
					"div[data-testid='size-options']",
					".size-options",
					"div[role='listbox']",
					"div[data-id='size-list']",
				},
				Type: TypeHTML,
			},
			{
				Name: "available_sizes",
				Selectors: []string{
					"button[data-testid='size-option']:not([disabled])",
					".size-option:not(.disabled)",
					"div[data-id='size-available']",
					"button:not([disabled])",
				},
				Type:     TypeText,
				Multiple: true,
			},
			{
				Name: "product_description",
				Selectors: []string{
					"[data-testid='product-description']",
					".product-description",
					"div._0xLoFW._78xIQ-",
				},
				Type: TypeText,
			},
			{Name: "all_scripts", Selectors: []string{"script"}, Type: TypeHTML, Multiple: true},
			{Name: FieldJSONLD, Selectors: []string{"script[type='application/ld+json']"}, Type: TypeHTML},
			{
				Name:      FieldHighlight,
				Selectors: []string{"div._ZDS_REF_SCOPE_.tyCFc1._4VHUP_._0xLoFW.P3OKTW.EJ4MLB._7ckuOK.Ij3QKg.abTEo1.hD5J5m > div > div > span"},
				Type:      TypeText,
			},
			{
				Name:      FieldAvailableSizes,
				Selectors: []string{"div.MU8FaS._0xLoFW._8sTSoF.parent._78xIQ- div"},
				Type:      TypeNestedList,
				Fields: []Field{
					{Name: "Size", Selectors: []string{"label span div span"}, Type: TypeText},
					{Name: "Price", Selectors: []string{"div label span div div p span"}, Type: TypeText},
					{Name: "Availability", Selectors: []string{"div label div.nXkCf3 span"}, Type: TypeText},
				},
			},
		},
	}

	if err := s.compile(); err != nil {
		panic(err)
	}
	return s
}
