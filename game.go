package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/arena/arena"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	frameDt         = 1.0 / 60
	messageDuration = 2.5
)

type gameConfig struct {
	Seed      int64
	Debug     bool
	Balance   string
	StartWave int
	Watch     bool
	Mute      bool
}

type message struct {
	text      string
	remaining float64
}

type Game struct {
	cfg      gameConfig
	sim      *arena.Simulation
	renderer *Renderer
	sounds   *soundBank
	watcher  *prefabs.Watcher
	ui       *ebitenui.UI

	paused   bool
	debug    bool
	gameOver bool
	frames   int
	messages []message
}

func NewGame(cfg gameConfig) (*Game, error) {
	g := &Game{cfg: cfg, debug: cfg.Debug, renderer: NewRenderer()}

	balance, err := loadBalance(cfg.Balance)
	if err != nil {
		return nil, err
	}

	opts := arena.Options{
		Balance:   balance,
		Seed:      cfg.Seed,
		Scene:     g.renderer,
		Hooks:     g.renderer,
		StartWave: cfg.StartWave,
	}
	if !cfg.Mute {
		g.sounds = newSoundBank()
		opts.Audio = g.sounds
	}

	sim, err := arena.New(opts)
	if err != nil {
		return nil, err
	}
	g.sim = sim

	if cfg.Watch {
		var dirs []string
		for _, dir := range []string{prefabs.DiskRoot, filepath.Join(prefabs.DiskRoot, "scripts")} {
			if info, err := os.Stat(dir); err == nil && info.IsDir() {
				dirs = append(dirs, dir)
			}
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.ui = NewPauseUI(g)
	log.Printf("arena: seed=%d wave=%d", sim.Seed(), cfg.StartWave)
	return g, nil
}

func loadBalance(name string) (*prefabs.Balance, error) {
	if name == "" {
		return prefabs.LoadBalance(prefabs.BalanceFile)
	}
	prefabs.DiskRoot = filepath.Dir(name)
	return prefabs.LoadBalance(filepath.Base(name))
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	g.reload()

	if g.paused {
		g.ui.Update()
		return nil
	}

	g.frames++
	ship, _ := g.sim.Position(g.sim.Player())
	g.sim.Step(frameDt, readControls(g.renderer, ship))
	g.handleEvents()

	g.renderer.Update(frameDt)
	kept := g.messages[:0]
	for _, m := range g.messages {
		m.remaining -= frameDt
		if m.remaining > 0 {
			kept = append(kept, m)
		}
	}
	g.messages = kept
	return nil
}

func (g *Game) handleEvents() {
	for _, evt := range g.sim.Events() {
		switch evt.Type {
		case system.EventWaveStarted:
			if info, ok := evt.Data.(system.WaveInfo); ok {
				g.say(fmt.Sprintf("Wave %d", info.Number))
			}
		case system.EventEnemyKilled:
			g.renderer.Shake(3)
		case system.EventPlayerHit:
			g.renderer.Shake(8)
		case system.EventLevelUp:
			if level, ok := evt.Data.(int); ok {
				g.say(fmt.Sprintf("Level %d", level))
			}
		case system.EventOverheated:
			g.say("Overheated")
		case system.EventPickupCollected:
			if info, ok := evt.Data.(system.PickupInfo); ok && info.Kind == component.PickupPower {
				g.say("Power up")
			}
		case system.EventPlayerDied:
			g.gameOver = true
			g.renderer.Shake(16)
			g.say("Game over - press R")
		}
	}
}

func (g *Game) say(text string) {
	g.messages = append(g.messages, message{text: text, remaining: messageDuration})
}

func (g *Game) restart() {
	if err := g.sim.Reset(); err != nil {
		log.Printf("restart: %v", err)
		return
	}
	g.sim.Events()
	g.gameOver = false
	g.paused = false
	g.messages = nil
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Poll()
	if len(changed) == 0 {
		return
	}
	log.Printf("reloading after edit to %s", strings.Join(changed, ", "))
	balance, err := loadBalance(g.cfg.Balance)
	if err != nil {
		log.Printf("reload: %v", err)
		return
	}
	if err := g.sim.ResetWithBalance(balance); err != nil {
		log.Printf("reload: %v", err)
		return
	}
	g.gameOver = false
	g.say("Reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.sim)
	g.drawHUD(screen)
	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	p := g.sim.Player()
	w := g.sim.World()
	hp, maxHP := g.sim.Health(p)

	line := fmt.Sprintf("HP %d/%d    Wave %d", hp, maxHP, g.sim.Wave())
	if player, ok := ecs.Get(w, p, component.PlayerComponent.Kind()); ok {
		line += fmt.Sprintf("    Level %d  XP %d  Kills %d", player.Level, player.XP, player.Kills)
	}
	if heat, ok := ecs.Get(w, p, component.HeatComponent.Kind()); ok {
		state := ""
		if heat.Overheated {
			state = " OVERHEATED"
		}
		line += fmt.Sprintf("    Heat %3.0f%%%s", heat.Fraction()*100, state)
	}
	ebitenutil.DebugPrint(screen, line)

	for i, m := range g.messages {
		ebitenutil.DebugPrintAt(screen, m.text, baseWidth/2-len(m.text)*3, baseHeight/3+i*16)
	}

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"Frames: %d  FPS: %.2f  TPS: %.2f\nseed %d  t=%.2f  enemies %d  entities %d  shots %d  scene %d",
			g.frames, ebiten.ActualFPS(), ebiten.ActualTPS(),
			g.sim.Seed(), g.sim.Time(), g.sim.Enemies(), w.Len(), len(g.sim.Projectiles()), g.renderer.Visible()+g.renderer.Shots(),
		), 0, baseHeight-40)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
