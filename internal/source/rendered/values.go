package rendered

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Values 스키마를 적용해 추출한 필드 값입니다.
//
// 값의 실제 타입은 필드 정의에 따라 다릅니다.
//   - 단일 값: string
//   - Multiple: []string
//   - nested_list: []Values
//   - 셀렉터 불일치 + Default 없음: nil
type Values map[string]any

// String name 필드의 문자열 값을 반환합니다. 없거나 문자열이 아니면 빈 문자열입니다.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Strings name 필드의 문자열 목록을 반환합니다.
func (v Values) Strings(name string) []string {
	switch x := v[name].(type) {
	case []string:
		return x
	case string:
		return []string{x}
	default:
		return nil
	}
}

// List name 필드의 nested_list 값을 반환합니다.
func (v Values) List(name string) []Values {
	l, _ := v[name].([]Values)
	return l
}

// Apply 문서 전체를 기준으로 스키마의 모든 필드를 추출합니다. (title, head의 script 포함)
func (s *Schema) Apply(doc *goquery.Document) Values {
	return extractFields(doc.Selection, s.Fields)
}

func extractFields(root *goquery.Selection, fields []Field) Values {
	out := make(Values, len(fields))
	for _, f := range fields {
		out[f.Name] = extractField(root, f)
	}
	return out
}

func extractField(root *goquery.Selection, f Field) any {
	selected := selectFirst(root, f.Selectors)
	if selected == nil {
		if f.Default == "" {
			return nil
		}
		return f.Default
	}

	switch {
	case f.Type == TypeNestedList:
		items := make([]Values, 0, selected.Length())
		selected.Each(func(_ int, el *goquery.Selection) {
			items = append(items, extractFields(el, f.Fields))
		})
		return items

	case f.Multiple:
		values := make([]string, 0, selected.Length())
		selected.Each(func(_ int, el *goquery.Selection) {
			if v, ok := readValue(el, f); ok {
				values = append(values, v)
			}
		})
		return values

	default:
		v, ok := readValue(selected.First(), f)
		if !ok {
			if f.Default == "" {
				return nil
			}
			return f.Default
		}
		return v
	}
}

// selectFirst 요소를 하나 이상 찾은 첫 번째 셀렉터의 결과를 반환합니다.
// 셀렉터가 비어 있으면 root 자신을 대상으로 합니다.
func selectFirst(root *goquery.Selection, selectors []string) *goquery.Selection {
	if len(selectors) == 0 {
		return root
	}
	for _, selector := range selectors {
		if sel := root.Find(selector); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

func readValue(el *goquery.Selection, f Field) (string, bool) {
	switch f.Type {
	case TypeText:
		return elementText(el), true

	case TypeHTML:
		html, err := goquery.OuterHtml(el)
		if err != nil {
			return "", false
		}
		return html, true

	case TypeAttribute:
		return el.Attr(f.Attribute)

	case TypeRegex:
		if f.pattern == nil {
			return "", false
		}
		m := f.pattern.FindStringSubmatch(elementText(el))
		if m == nil {
			return "", false
		}
		return m[1], true
	}

	return "", false
}

// elementText 요소의 텍스트를 NFC로 정규화하고 공백을 하나로 줄입니다.
func elementText(el *goquery.Selection) string {
	return norm.NFC.String(strings.Join(strings.Fields(el.Text()), " "))
}
