package structured

import (
	"github.com/darkkaiser/zalando-scraper/internal/product"
)

// 구조화 API에 사전 등록된 쿼리의 식별자입니다. 서버가 허용하는 값과 정확히 같아야 합니다.
const (
	CardQueryID = "4d1d108a1b774122d02d46a47ffc05819b083570192b52c0c609813cb59f26fe"
	SKUQueryID  = "86882a8b31d8657c7219bbba76635fdfcf6d8b04f959241985e7a5911b242a26"
)

const cardModule = "PRODUCT_CARD_WITH_HOVER"

// Query 배치 요청 배열에 담기는 사전 등록 쿼리 하나입니다.
type Query struct {
	ID        string         `json:"id"`
	Variables map[string]any `json:"variables"`
}

// Name 로그에 남길 쿼리 이름을 반환합니다.
func (q Query) Name() string {
	switch q.ID {
	case CardQueryID:
		return "card"
	case SKUQueryID:
		return "sku"
	default:
		return q.ID
	}
}

// CardQuery 상품 노드와 변형 목록을 조회하는 쿼리입니다.
func CardQuery(id product.Identity) Query {
	return Query{
		ID: CardQueryID,
		Variables: map[string]any{
			"id":             id.ERN(),
			"version":        1,
			"moduleInput":    map[string]any{"module": cardModule},
			"displayContext": map[string]any{"module": cardModule},
		},
	}
}

// SKUQuery SKU, 모델 번호, 변형(simples) 메타데이터를 조회하는 쿼리입니다.
func SKUQuery(id product.Identity) Query {
	return Query{
		ID: SKUQueryID,
		Variables: map[string]any{
			"id": id.ERN(),
		},
	}
}
