// Command treedemo runs the particle tree experience in a window.
//
// Click the tree to explode it into the photo cloud; click a photo to open
// it, Escape to close, R to reform the tree, Tab to cycle photos by
// keyboard. The chosen tree color and particle budget persist across runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	tinsel "github.com/gzhang33/Christmas-tree-sub002"
)

var (
	configPath = flag.String("config", "", "optional YAML config file")
	showFPS    = flag.Bool("fps", false, "show the FPS readout")
)

// placeholderPhotos is used when no photo source is wired up.
func placeholderPhotos() []tinsel.Photo {
	photos := make([]tinsel.Photo, 0, 24)
	for i := 0; i < 24; i++ {
		photos = append(photos, tinsel.Photo{
			ID:  fmt.Sprintf("photo-%02d", i),
			URL: fmt.Sprintf("https://picsum.photos/seed/tinsel%d/600/400", i),
		})
	}
	return photos
}

type game struct {
	composer *tinsel.Composer
	renderer *tinsel.Renderer
	prefs    *tinsel.PrefsManager
	fps      bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && g.composer.IsExploded() {
		g.composer.ReturnToTree()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.fps = !g.fps
	}
	g.composer.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.composer)
	if g.fps {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(w, h int) (int, int) {
	return w, h
}

func main() {
	flag.Parse()

	cfg := tinsel.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Fatalf("read config: %v", err)
		}
		cfg, err = tinsel.ParseConfig(data)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	prefs, err := tinsel.OpenPrefs("tinsel")
	if err != nil {
		log.Printf("preferences unavailable: %v", err)
	}
	saved := prefs.Load()
	saved.Apply(&cfg)

	composer := tinsel.NewComposer(cfg, placeholderPhotos(), nil)
	composer.EnableHardwareInput()
	composer.SetVisibilityProbe(func() bool {
		return ebiten.IsWindowMinimized()
	})

	g := &game{
		composer: composer,
		renderer: tinsel.NewRenderer(),
		prefs:    prefs,
		fps:      *showFPS,
	}

	ebiten.SetWindowTitle("tinsel")
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}

	if err := prefs.Save(tinsel.Capture(composer.Store().Config())); err != nil {
		log.Printf("save preferences: %v", err)
	}
}
