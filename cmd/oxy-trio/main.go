package main

import (
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/oxy-trio/engine"
	"github.com/Carmen-Shannon/oxy-trio/engine/renderer"
	"github.com/Carmen-Shannon/oxy-trio/engine/scene"
	"github.com/Carmen-Shannon/oxy-trio/engine/window"
)

const (
	windowTitle  = "SOP - Lineær Algebra"
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	// GLFW and the surface it backs must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Printf("[Main] %v", err)
		os.Exit(-1)
	}
}

// run builds the window, renderer and scene, then blocks in the render loop until the
// window is closed. Any error returned is fatal to the process.
func run() error {
	// ── Window ──────────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(windowTitle),
		window.WithWidth(windowWidth),
		window.WithHeight(windowHeight),
		window.WithResizable(true),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithClearColor(renderer.DefaultClearColor),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Scene ───────────────────────────────────────────────────────────
	sc := scene.NewScene("trio")
	if err := sc.Init(r); err != nil {
		return err
	}
	defer sc.Release()

	// ── Engine ──────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(sc),
	)

	log.Printf("[Main] %s: %dx%d, %d instances", windowTitle, win.Width(), win.Height(), len(sc.Instances()))
	return eng.Run()
}
