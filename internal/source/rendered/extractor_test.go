package rendered

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const highlightMarkup = `<div class="_ZDS_REF_SCOPE_ tyCFc1 _4VHUP_ _0xLoFW P3OKTW EJ4MLB _7ckuOK Ij3QKg abTEo1 hD5J5m"><div><div><span>Spedizione gratuita</span></div></div></div>`

func renderedPage(jsonLD string, container bool) string {
	sizes := sizeBlock("NI112O0IH-A110001", "40", "Esaurito") +
		sizeBlock("NI112O0IH-A110002", "41", "2 articoli disponibili") +
		sizeBlock("NI112O0IH-A110009", "42")
	if container {
		sizes = `<div class="MU8FaS">` + sizes + `</div>`
	}

	return `<html><head><title>Nike Sportswear - Sneakers basse</title>` + jsonLD + `</head><body>` +
		`<h1>Air Max</h1>` + highlightMarkup + sizes + `</body></html>`
}

func TestExtractorParse(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil, nil, defaultPhrases())
	html := renderedPage(linkedDataFixture, true)

	r := e.Parse(html)
	require.NotNil(t, r)

	assert.Equal(t, len(html), r.HTMLLength)
	assert.Equal(t, "Spedizione gratuita", r.Highlight)
	assert.Equal(t, "Air Max", r.Fields.String("product_name"))
	assert.Empty(t, r.LegacySizes)
	assert.False(t, r.Empty())

	require.Len(t, r.ModernSizes, 3)
	assert.Equal(t, ModernOutOfStock, r.ModernSizes[0].Availability)
	assert.True(t, decimal.Zero.Equal(*r.ModernSizes[0].Price))
	assert.Equal(t, "2", r.ModernSizes[1].Quantity)
	assert.True(t, decimal.RequireFromString("79.95").Equal(*r.ModernSizes[1].Price))
	assert.Equal(t, QuantityUnknownInStock, r.ModernSizes[2].Quantity)
	assert.True(t, decimal.RequireFromString("89.95").Equal(*r.ModernSizes[2].Price), "판매 정보에 없는 SKU는 첫 번째 가격을 사용해야 합니다")
	assert.Equal(t, "EUR", r.ModernSizes[2].Currency)

	require.NotNil(t, r.LinkedData)
	assert.Equal(t, "Nike Sportswear", r.LinkedData.Product.Brand)
	assert.Len(t, r.LinkedData.Offers, 3)
}

func TestExtractorParse_PartialFailure(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil, nil, defaultPhrases())

	t.Run("JSON-LD 해석 실패는 해당 결과만 비움", func(t *testing.T) {
		t.Parallel()

		r := e.Parse(renderedPage(`<script type="application/ld+json">{broken</script>`, true))
		assert.Nil(t, r.LinkedData)
		require.Len(t, r.ModernSizes, 3)
		assert.Nil(t, r.ModernSizes[1].Price)
	})

	t.Run("사이즈 컨테이너가 없으면 문서 전체에서 찾음", func(t *testing.T) {
		t.Parallel()

		r := e.Parse(renderedPage("", false))
		assert.Nil(t, r.LinkedData)
		assert.Len(t, r.ModernSizes, 3)
	})

	t.Run("정보 없는 페이지", func(t *testing.T) {
		t.Parallel()

		r := e.Parse(`<html><body><p>Pagina non trovata</p></body></html>`)
		assert.True(t, r.Empty())
	})
}

func TestExtractorExtract(t *testing.T) {
	t.Parallel()

	const url = "https://www.zalando.it/nike-sneakers-ni112o0ih-a11.html"

	t.Run("성공", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		e := NewExtractor(RendererFunc(func(_ context.Context, u string) (string, error) {
			gotURL = u
			return renderedPage(linkedDataFixture, true), nil
		}), nil, defaultPhrases())

		r, err := e.Extract(context.Background(), url)
		require.NoError(t, err)
		assert.Equal(t, url, gotURL)
		assert.Len(t, r.ModernSizes, 3)
	})

	t.Run("렌더링 실패", func(t *testing.T) {
		t.Parallel()

		e := NewExtractor(RendererFunc(func(context.Context, string) (string, error) {
			return "", errors.New("chrome not found")
		}), nil, defaultPhrases())

		r, err := e.Extract(context.Background(), url)
		assert.Nil(t, r)
		assert.True(t, apperrors.Is(err, apperrors.SourceUnavailable))
	})

	t.Run("렌더링 타임아웃은 SourceUnavailable로 감쌈", func(t *testing.T) {
		t.Parallel()

		e := NewExtractor(RendererFunc(func(context.Context, string) (string, error) {
			return "", apperrors.New(apperrors.Timeout, "timeout")
		}), nil, defaultPhrases())

		_, err := e.Extract(context.Background(), url)
		assert.True(t, apperrors.Is(err, apperrors.SourceUnavailable))
		assert.Equal(t, apperrors.Timeout, apperrors.UnderlyingType(err))
	})
}

func TestResultEmpty(t *testing.T) {
	t.Parallel()

	var nilResult *Result
	assert.True(t, nilResult.Empty())
	assert.True(t, (&Result{HTMLLength: 10}).Empty())
	assert.False(t, (&Result{Highlight: "x"}).Empty())
	assert.False(t, (&Result{LinkedData: &LinkedData{}}).Empty())
}
