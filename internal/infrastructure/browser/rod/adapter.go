package rod

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"fixbridge/internal/application/port/output"
	"fixbridge/internal/domain/entity"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultSlowMotion = 0

	// pointerMarker tags console.debug calls emitted by the injected listener.
	pointerMarker = "__fixbridge_pointer"

	snapshotSize  = 240
	thumbnailSize = 160
)

// pointerListener reports right-clicks through the console so they can be
// observed over CDP without exposing a binding.
const pointerListener = `() => {
	if (window.__fixbridgeListening) return;
	window.__fixbridgeListening = true;
	document.addEventListener('contextmenu', (e) => {
		console.debug('` + pointerMarker + `', e.type, e.button, e.clientX, e.clientY);
	}, true);
}`

const elementAtPoint = `(x, y) => {
	const el = document.elementFromPoint(x, y);
	if (!el) return null;
	return {
		tagName: el.tagName,
		id: el.id || '',
		classList: Array.from(el.classList),
		textContent: (el.textContent || '').trim(),
	};
}`

var _ output.BrowserPort = (*BrowserAdapter)(nil)

type BrowserAdapter struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
	timeout  time.Duration
	viewport entity.Viewport
	logger   output.LoggerPort

	mu     sync.Mutex
	closed bool
}

type BrowserConfig struct {
	Headless   bool
	SlowMotion time.Duration
	Timeout    time.Duration
	NoSandbox  bool
	DevTools   bool
	Viewport   entity.Viewport
}

func DefaultConfig() BrowserConfig {
	return BrowserConfig{
		Headless:   false,
		SlowMotion: defaultSlowMotion,
		Timeout:    defaultTimeout,
		NoSandbox:  false,
		DevTools:   false,
		Viewport:   entity.Viewport{Width: 1000, Height: 1000},
	}
}

func NewBrowserAdapter(ctx context.Context, cfg BrowserConfig, logger output.LoggerPort) (*BrowserAdapter, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	l := launcher.New().
		Context(ctx).
		Headless(cfg.Headless).
		Devtools(cfg.DevTools).
		NoSandbox(cfg.NoSandbox).
		Delete("use-mock-keychain")

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	if cfg.Viewport.Width > 0 && cfg.Viewport.Height > 0 {
		err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             cfg.Viewport.Width,
			Height:            cfg.Viewport.Height,
			DeviceScaleFactor: 1,
		})
		if err != nil {
			logger.Warn("Viewport not applied", "error", err)
		}
	}

	return &BrowserAdapter{
		browser:  browser,
		launcher: l,
		page:     page,
		timeout:  cfg.Timeout,
		viewport: cfg.Viewport,
		logger:   logger.WithField("component", "browser"),
	}, nil
}

func (b *BrowserAdapter) IsReady() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.closed && b.page != nil
}

func (b *BrowserAdapter) Open(ctx context.Context, url string) error {
	page := b.page.Context(ctx).Timeout(b.timeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("page load failed: %w", err)
	}
	b.logger.Info("Page opened", "url", url)
	return nil
}

// WatchPointer installs the right-click listener on the current and every
// future document and blocks, calling fn per event, until ctx is done.
func (b *BrowserAdapter) WatchPointer(ctx context.Context, fn func(entity.PointerEvent)) error {
	page := b.page.Context(ctx)

	if _, err := page.EvalOnNewDocument("(" + pointerListener + ")()"); err != nil {
		return fmt.Errorf("install listener: %w", err)
	}
	if _, err := page.Eval(pointerListener); err != nil {
		return fmt.Errorf("install listener on current page: %w", err)
	}

	wait := page.EachEvent(func(e *proto.RuntimeConsoleAPICalled) {
		ev, ok := parsePointerEvent(e)
		if !ok {
			return
		}
		b.logger.Debug("Pointer event", "type", ev.Type, "x", ev.ClientX, "y", ev.ClientY)
		fn(ev)
	})
	wait()

	return ctx.Err()
}

func parsePointerEvent(e *proto.RuntimeConsoleAPICalled) (entity.PointerEvent, bool) {
	if e.Type != proto.RuntimeConsoleAPICalledTypeDebug || len(e.Args) != 5 {
		return entity.PointerEvent{}, false
	}
	if e.Args[0].Value.Str() != pointerMarker {
		return entity.PointerEvent{}, false
	}
	return entity.PointerEvent{
		Type:    entity.PointerEventType(e.Args[1].Value.Str()),
		Button:  entity.PointerButton(e.Args[2].Value.Int()),
		ClientX: e.Args[3].Value.Num(),
		ClientY: e.Args[4].Value.Num(),
	}, true
}

// ElementAt returns nil without an error when no element is at pos.
func (b *BrowserAdapter) ElementAt(ctx context.Context, pos entity.Position) (*entity.ElementDescriptor, error) {
	res, err := b.page.Context(ctx).Timeout(b.timeout).Eval(elementAtPoint, pos.X, pos.Y)
	if err != nil {
		return nil, fmt.Errorf("element lookup failed: %w", err)
	}
	return descriptorFromJSON(res.Value), nil
}

func descriptorFromJSON(v gson.JSON) *entity.ElementDescriptor {
	if v.Nil() {
		return nil
	}

	el := &entity.ElementDescriptor{
		TagName:     v.Get("tagName").Str(),
		ID:          v.Get("id").Str(),
		TextContent: v.Get("textContent").Str(),
		ClassList:   []string{},
	}
	for _, c := range v.Get("classList").Arr() {
		el.ClassList = append(el.ClassList, c.Str())
	}
	return el
}

// Snapshot captures the area around pos and returns it as a JPEG thumbnail.
func (b *BrowserAdapter) Snapshot(ctx context.Context, pos entity.Position) ([]byte, error) {
	clip := snapshotClip(pos, b.viewport)

	imgBytes, err := b.page.Context(ctx).Timeout(b.timeout).Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
		Clip:    clip,
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	img = imaging.Fit(img, thumbnailSize, thumbnailSize, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return buf.Bytes(), nil
}

// snapshotClip centres a square on pos, shifted to stay inside the viewport.
func snapshotClip(pos entity.Position, vp entity.Viewport) *proto.PageViewport {
	size := float64(snapshotSize)
	x := pos.X - size/2
	y := pos.Y - size/2

	if vp.Width > 0 && x+size > float64(vp.Width) {
		x = float64(vp.Width) - size
	}
	if vp.Height > 0 && y+size > float64(vp.Height) {
		y = float64(vp.Height) - size
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return &proto.PageViewport{X: x, Y: y, Width: size, Height: size, Scale: 1}
}

func (b *BrowserAdapter) CurrentURL() string {
	info, err := b.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (b *BrowserAdapter) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true

	if b.browser != nil {
		_ = b.browser.Close()
	}
	if b.launcher != nil {
		b.launcher.Kill()
		b.launcher.Cleanup()
	}
}
