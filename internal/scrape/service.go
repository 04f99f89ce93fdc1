// Package scrape 상품 URL 하나에 대해 세 데이터 소스를 동시에 실행하고 결과를 병합해 응답 봉투로 감싸는 수집 서비스입니다.
//
// 각 소스는 독립된 고루틴에서 실행되며 한 소스의 실패가 다른 소스를 취소하지 않습니다.
// 세 소스가 모두 끝난 뒤에만 병합을 시작합니다.
package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/darkkaiser/zalando-scraper/internal/config"
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
	"github.com/darkkaiser/zalando-scraper/internal/pkg/metrics"
	"github.com/darkkaiser/zalando-scraper/internal/product"
	"github.com/darkkaiser/zalando-scraper/internal/reconcile"
	"github.com/darkkaiser/zalando-scraper/internal/source/rawmarkup"
	"github.com/darkkaiser/zalando-scraper/internal/source/rendered"
	"github.com/darkkaiser/zalando-scraper/internal/source/structured"
	applog "github.com/darkkaiser/zalando-scraper/pkg/log"
)

const component = "scrape"

// StructuredFetcher 구조화 API에서 상품을 조회합니다.
type StructuredFetcher interface {
	FetchProduct(ctx context.Context, id product.Identity) (*structured.Product, error)
}

// StructuredFactory 요청마다 새 구조화 API 클라이언트(세션 포함)를 만듭니다.
type StructuredFactory func(domain string) (StructuredFetcher, error)

// RenderedExtractor 렌더링 페이지에서 사이즈 표와 판매 정보를 추출합니다.
type RenderedExtractor interface {
	Extract(ctx context.Context, url string) (*rendered.Result, error)
}

// RawExtractor 원본 마크업의 임베디드 캐시에서 판매자와 재고 정보를 추출합니다.
type RawExtractor interface {
	Extract(ctx context.Context, id product.Identity) (*rawmarkup.Result, error)
}

// Service 상품 수집 요청을 처리합니다. 요청 사이에 공유하는 가변 상태가 없어 동시에 호출해도 안전합니다.
type Service struct {
	newStructured StructuredFactory
	rendered      RenderedExtractor
	raw           RawExtractor

	partialResults bool

	now func() time.Time
}

// NewService 주어진 소스 구현으로 Service를 생성합니다.
func NewService(newStructured StructuredFactory, renderedExtractor RenderedExtractor, rawExtractor RawExtractor, cfg config.ReconcileConfig) *Service {
	if newStructured == nil || renderedExtractor == nil || rawExtractor == nil {
		panic("scrape: 세 데이터 소스는 모두 필수입니다")
	}

	return &Service{
		newStructured: newStructured,
		rendered:      renderedExtractor,
		raw:           rawExtractor,

		partialResults: cfg.PartialResults,

		now: func() time.Time { return time.Now().UTC() },
	}
}

// New 애플리케이션 설정으로 실제 데이터 소스를 구성한 Service를 생성합니다.
func New(appConfig *config.AppConfig) (*Service, error) {
	var schema *rendered.Schema
	if appConfig.Rendered.SchemaFile != "" {
		s, err := rendered.LoadSchema(appConfig.Rendered.SchemaFile)
		if err != nil {
			return nil, err
		}
		schema = s
	}

	structuredCfg := appConfig.Structured
	newStructured := func(domain string) (StructuredFetcher, error) {
		return structured.NewClient(domain, structuredCfg)
	}

	renderedExtractor := rendered.NewExtractor(
		rendered.NewChromeRenderer(appConfig.Rendered),
		schema,
		rendered.NewPhrases(appConfig.Rendered.Phrases),
	)

	rawExtractor := rawmarkup.NewExtractor(rawmarkup.NewHTTPMarkupSource(appConfig.RawMarkup))

	return NewService(newStructured, renderedExtractor, rawExtractor, appConfig.Reconcile), nil
}

// branchResults 소스별 결과 슬롯. 각 고루틴은 자기 슬롯에만 씁니다.
type branchResults struct {
	structured *structured.Product
	rendered   *rendered.Result
	raw        *rawmarkup.Result

	errs map[product.Source]error
}

// Scrape 상품 URL을 수집해 응답 봉투를 반환합니다. 실패도 봉투로 표현하며 nil을 반환하지 않습니다.
func (s *Service) Scrape(ctx context.Context, rawURL string) (resp *Response) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"url":   rawURL,
				"panic": r,
			}).Error("상품 수집 중 예기치 않은 패닉이 발생했습니다")

			resp = failure(fmt.Sprintf("%s%v", errPrefixUnexpected, r), nil)
		}
		metrics.ObserveScrape(resp.Success, start)
	}()

	id, err := product.Resolve(rawURL)
	if err != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"url":   rawURL,
			"error": err,
		}).Warn("상품 URL 해석에 실패했습니다")

		return failure(ErrMsgInvalidURL, nil)
	}

	results := s.fanOut(ctx, id)
	return s.assemble(id, results)
}

// fanOut 세 소스를 동시에 실행하고 모두 끝날 때까지 기다립니다.
func (s *Service) fanOut(ctx context.Context, id product.Identity) *branchResults {
	var (
		wg sync.WaitGroup

		structuredErr, renderedErr, rawErr error
		results                            = &branchResults{}
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		structuredErr = s.runBranch(id, product.SourceAPI, func() error {
			client, err := s.newStructured(id.Domain)
			if err != nil {
				return err
			}
			p, err := client.FetchProduct(ctx, id)
			results.structured = p
			return err
		})
	}()

	go func() {
		defer wg.Done()
		renderedErr = s.runBranch(id, product.SourceCrawl, func() error {
			r, err := s.rendered.Extract(ctx, id.URL)
			results.rendered = r
			return err
		})
	}()

	go func() {
		defer wg.Done()
		rawErr = s.runBranch(id, product.SourceRaw, func() error {
			r, err := s.raw.Extract(ctx, id)
			results.raw = r
			return err
		})
	}()

	wg.Wait()

	results.errs = make(map[product.Source]error, len(product.AllSources))
	for source, err := range map[product.Source]error{
		product.SourceAPI:   structuredErr,
		product.SourceCrawl: renderedErr,
		product.SourceRaw:   rawErr,
	} {
		if err != nil {
			results.errs[source] = err
		}
	}

	// 실패한 소스의 부분 결과는 병합에 사용하지 않습니다.
	if results.errs[product.SourceAPI] != nil {
		results.structured = nil
	}
	if results.errs[product.SourceCrawl] != nil {
		results.rendered = nil
	}
	if results.errs[product.SourceRaw] != nil {
		results.raw = nil
	}

	return results
}

// runBranch 소스 하나를 실행합니다. 소스 내부의 패닉은 Unexpected 에러로 바꿔 반환합니다.
func (s *Service) runBranch(id product.Identity, source product.Source, fn func() error) (err error) {
	start := time.Now()

	defer func() {
		outcome := metrics.OutcomeSuccess

		if r := recover(); r != nil {
			err = apperrors.Newf(apperrors.Unexpected, "데이터 소스 실행 중 패닉이 발생했습니다: %v", r)
			outcome = metrics.OutcomePanic

			applog.WithComponentAndFields(component, applog.Fields{
				"product_code": id.ProductCode,
				"source":       source,
				"panic":        r,
			}).Error("데이터 소스 패닉 복구")
		} else if err != nil {
			outcome = metrics.OutcomeFailure

			applog.WithComponentAndFields(component, applog.Fields{
				"product_code": id.ProductCode,
				"source":       source,
				"elapsed":      time.Since(start).String(),
				"error":        err,
			}).Warn("데이터 소스 실행 실패")
		}

		metrics.ObserveSource(string(source), outcome, start)
	}()

	return fn()
}

// assemble 실패 정책에 따라 병합 여부를 결정하고 응답 봉투를 만듭니다.
//
// 엄격 모드에서는 한 소스라도 실패하면 api, crawl, raw 순으로 첫 번째 실패 메시지를 반환합니다.
// 부분 결과 모드에서는 성공한 소스만으로 병합하되, 모든 소스가 실패하면 엄격 모드와 같이 실패합니다.
func (s *Service) assemble(id product.Identity, results *branchResults) *Response {
	md := newMetadata(id)
	md.SourcesUsed = SourcesUsed{
		API:   results.errs[product.SourceAPI] == nil,
		Crawl: results.errs[product.SourceCrawl] == nil,
		Raw:   results.errs[product.SourceRaw] == nil,
	}
	if len(results.errs) > 0 {
		md.SourceErrors = make(map[product.Source]string, len(results.errs))
		for source, err := range results.errs {
			md.SourceErrors[source] = apperrors.Message(err)
		}
	}

	if len(results.errs) > 0 && (!s.partialResults || len(results.errs) == len(product.AllSources)) {
		for _, source := range product.AllSources {
			if err, ok := results.errs[source]; ok {
				return failure(errorPrefix(source)+apperrors.Message(err), md)
			}
		}
	}

	record := reconcile.Merge(reconcile.Input{
		Identity:   id,
		Structured: results.structured,
		Rendered:   results.rendered,
		Raw:        results.raw,
		Partial:    len(results.errs) > 0,
		MergedAt:   s.now(),
	})

	mergedAt := record.Provenance.MergedAt
	md.MergedAt = &mergedAt
	md.DataSources = record.Provenance.DataSources

	applog.WithComponentAndFields(component, applog.Fields{
		"product_code":  id.ProductCode,
		"domain":        id.Domain,
		"variant_count": len(record.Variants),
		"data_sources":  record.Provenance.DataSources,
		"partial":       len(results.errs) > 0,
	}).Info("상품 수집 완료")

	return &Response{
		Success:  true,
		Data:     record,
		Metadata: md,
	}
}
