package rendered

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/darkkaiser/zalando-scraper/internal/config"
	apperrors "github.com/darkkaiser/zalando-scraper/internal/pkg/errors"
)

// Renderer 상품 페이지를 렌더링하고 최종 HTML을 반환합니다.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// RendererFunc 일반 함수를 Renderer로 사용하기 위한 어댑터입니다.
type RendererFunc func(ctx context.Context, url string) (string, error)

func (f RendererFunc) Render(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// openSizePickerScript 사이즈 선택 위젯을 여는 버튼들을 차례로 클릭합니다. 실패는 무시합니다.
const openSizePickerScript = `(() => {
	for (const selector of ['#picker-trigger', '[data-testid="size-picker-trigger"]', 'button[data-id="size-select"]']) {
		try { document.querySelector(selector)?.click(); } catch (e) {}
	}
	return true;
})()`

// scrollStepScript 한 화면만큼 아래로 스크롤하고 페이지 끝에 도달했는지 반환합니다.
const scrollStepScript = `(() => {
	window.scrollBy(0, window.innerHeight);
	return window.scrollY + window.innerHeight >= document.documentElement.scrollHeight - 2;
})()`

const (
	pickerSettleDelay = 800 * time.Millisecond
	scrollSettleDelay = 400 * time.Millisecond
	scanStepDelay     = 250 * time.Millisecond
	maxScanSteps      = 40
)

// ChromeRenderer 헤드리스 Chrome(chromedp)으로 페이지를 렌더링합니다.
// 요청마다 브라우저 프로세스를 새로 띄우며 렌더링이 끝나면 종료합니다.
type ChromeRenderer struct {
	cfg config.RenderedConfig
}

var _ Renderer = (*ChromeRenderer)(nil)

// NewChromeRenderer 새로운 ChromeRenderer를 생성합니다.
func NewChromeRenderer(cfg config.RenderedConfig) *ChromeRenderer {
	return &ChromeRenderer{cfg: cfg}
}

func (r *ChromeRenderer) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.cfg.Headless),
		chromedp.UserAgent(r.cfg.UserAgent),
		chromedp.WindowSize(1366, 900),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if r.cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.cfg.ExecPath))
	}
	return opts
}

// Render url을 열고 사이즈 선택 위젯을 펼친 뒤 페이지 끝까지 스크롤해 지연 로딩 콘텐츠를 불러옵니다.
//
//   - body가 준비될 때까지 최대 WaitTimeout 대기
//   - 전체 작업은 PageTimeout을 넘지 않음
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	pageCtx, cancelPage := context.WithTimeout(browserCtx, r.cfg.PageTimeout)
	defer cancelPage()

	var html string
	err := chromedp.Run(pageCtx,
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			waitCtx, cancel := context.WithTimeout(ctx, r.cfg.WaitTimeout)
			defer cancel()
			return chromedp.WaitReady("body", chromedp.ByQuery).Do(waitCtx)
		}),
		chromedp.Evaluate(openSizePickerScript, nil),
		chromedp.Sleep(pickerSettleDelay),
		chromedp.Evaluate(`window.scrollTo(0, 300)`, nil),
		chromedp.Sleep(scrollSettleDelay),
		chromedp.ActionFunc(scanFullPage),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() == nil && pageCtx.Err() != nil {
			return "", apperrors.Wrapf(err, apperrors.Timeout, "페이지 렌더링 시간(%s)을 초과했습니다", r.cfg.PageTimeout)
		}
		return "", apperrors.Wrap(err, apperrors.SourceUnavailable, "헤드리스 브라우저로 페이지를 렌더링하지 못했습니다")
	}

	return html, nil
}

// scanFullPage 페이지 끝에 도달할 때까지 한 화면씩 스크롤합니다.
func scanFullPage(ctx context.Context) error {
	for range maxScanSteps {
		var atBottom bool
		if err := chromedp.Evaluate(scrollStepScript, &atBottom).Do(ctx); err != nil {
			return err
		}
		if err := chromedp.Sleep(scanStepDelay).Do(ctx); err != nil {
			return err
		}
		if atBottom {
			return nil
		}
	}
	return nil
}
