package renderer

import (
	"context"
	"errors"
	"time"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/config"
	"github.com/Iterio-app/Iterio-Platform-sub000/internal/observability/metrics"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// engine abstracts the browser driving steps so the pipeline can be
// exercised without a real browser.
type engine interface {
	// start launches the browser process and returns the browser context
	// plus a teardown func.
	start(ctx context.Context) (context.Context, func(), error)
	load(ctx context.Context, markup string) error
	rasterize(ctx context.Context) ([]byte, error)
}

// Backend renders markup through headless Chromium. One render call owns
// one browser process for its whole duration.
type Backend struct {
	cfg config.RenderConfig
	env string
	log *zap.Logger

	newEngine func() engine
}

func NewBackend(cfg config.Config, log *zap.Logger) *Backend {
	b := &Backend{
		cfg: cfg.Render,
		env: cfg.Environment,
		log: log.Named("renderer"),
	}
	b.newEngine = func() engine {
		return &chromeEngine{cfg: b.cfg, env: b.env}
	}
	return b
}

func (b *Backend) Render(ctx context.Context, markup string) ([]byte, error) {
	return b.render(ctx, markup, NewSession())
}

// render runs the strictly sequential lifecycle: launch, load, rasterize.
// Teardown is attempted on every exit path and runs in the background; the
// teardown func is handed to the goroutine explicitly so it is read at
// execution time.
func (b *Backend) render(ctx context.Context, markup string, session *Session) (pdf []byte, err error) {
	eng := b.newEngine()
	start := time.Now()

	session.transition(SessionLaunching)
	browserCtx, teardown, err := eng.start(ctx)
	if err != nil {
		session.fail()
		metrics.Pipeline().ObserveRender("launch_failed", time.Since(start))
		b.log.Error("browser launch failed", zap.Error(err))
		return nil, ErrLaunch
	}
	defer func(session *Session, teardown func()) {
		session.transition(SessionClosing)
		go func() {
			teardown()
			session.transition(SessionClosed)
		}()
	}(session, teardown)

	session.transition(SessionReady)

	loadCtx, cancelLoad := context.WithTimeout(browserCtx, b.cfg.ContentLoadTimeout)
	defer cancelLoad()
	if err := eng.load(loadCtx, markup); err != nil {
		session.fail()
		if errors.Is(loadCtx.Err(), context.DeadlineExceeded) {
			metrics.Pipeline().ObserveRender("load_timeout", time.Since(start))
			b.log.Warn("content load timed out")
			return nil, ErrContentLoadTimeout
		}
		metrics.Pipeline().ObserveRender("error", time.Since(start))
		return nil, err
	}

	session.transition(SessionRendering)

	rasterCtx, cancelRaster := context.WithTimeout(browserCtx, b.cfg.RasterizeTimeout)
	defer cancelRaster()
	pdf, err = eng.rasterize(rasterCtx)
	if err != nil {
		session.fail()
		if errors.Is(rasterCtx.Err(), context.DeadlineExceeded) {
			metrics.Pipeline().ObserveRender("raster_timeout", time.Since(start))
			b.log.Warn("rasterization timed out")
			return nil, ErrRasterizationTimeout
		}
		metrics.Pipeline().ObserveRender("error", time.Since(start))
		return nil, err
	}

	metrics.Pipeline().ObserveRender("success", time.Since(start))
	return pdf, nil
}

// A4 in inches, with fixed margins and a slight scale-down so wide content
// fits the page without distortion.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
	marginIn      = 0.4
	printScale    = 0.9
)

type chromeEngine struct {
	cfg config.RenderConfig
	env string
}

func (e *chromeEngine) start(ctx context.Context) (context.Context, func(), error) {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if e.cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.cfg.ChromePath))
	}
	if e.env == config.EnvSandbox {
		opts = append(opts,
			chromedp.NoSandbox,
			chromedp.DisableGPU,
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("single-process", true),
			chromedp.Flag("no-zygote", true),
		)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	teardown := func() {
		cancelBrowser()
		cancelAlloc()
	}

	// Starting with an empty task forces the browser process to launch,
	// surfacing a missing or broken binary here instead of mid-load.
	if err := chromedp.Run(browserCtx); err != nil {
		teardown()
		return nil, nil, err
	}
	return browserCtx, teardown, nil
}

func (e *chromeEngine) load(ctx context.Context, markup string) error {
	return chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, markup).Do(ctx)
		}),
		chromedp.WaitReady("body"),
	)
}

func (e *chromeEngine) rasterize(ctx context.Context) ([]byte, error) {
	var pdf []byte
	err := chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		buf, _, err := page.PrintToPDF().
			WithPrintBackground(true).
			WithScale(printScale).
			WithPaperWidth(paperWidthIn).
			WithPaperHeight(paperHeightIn).
			WithMarginTop(marginIn).
			WithMarginBottom(marginIn).
			WithMarginLeft(marginIn).
			WithMarginRight(marginIn).
			Do(ctx)
		if err != nil {
			return err
		}
		pdf = buf
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return pdf, nil
}
