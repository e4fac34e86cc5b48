// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"photo-editor/internal/app"
	"photo-editor/internal/imaging"
	"photo-editor/internal/version"
	"photo-editor/ui/canvas"
	"photo-editor/ui/panels"
	"photo-editor/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"golang.design/x/clipboard"
)

const appTitle = "Photo Editor"

var imageFilter = storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tif", ".tiff"})

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	theme     *app.EditorTheme
	canvas    *canvas.EditorCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, theme *app.EditorTheme) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
		theme:  theme,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(1100, 700))
	return mw
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.state)
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas, mw.prefs)
	mw.statusBar = widget.NewLabel("Open an image to start editing")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, // top
		nil, nil, nil,
		mw.canvas,
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar), // bottom
		nil, nil,
		split,
	)
	mw.SetContent(content)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	openBtn := widget.NewButton("Open…", mw.onOpenImage)
	exportBtn := widget.NewButton("Export PNG…", mw.onExportPNG)
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToWindow)
	actualBtn := widget.NewButton("1:1", mw.canvas.ActualSize)

	return container.NewHBox(
		openBtn,
		exportBtn,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image…", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG…", mw.onExportPNG),
		fyne.NewMenuItem("Export PDF…", mw.onExportPDF),
		fyne.NewMenuItem("Copy to Clipboard", mw.onCopyToClipboard),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo Stroke", mw.state.UndoStroke),
		fyne.NewMenuItem("Clear Strokes", mw.state.ClearStrokes),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Dark Mode", mw.onToggleDarkMode),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Fit to Window", mw.canvas.FitToWindow),
		fyne.NewMenuItem("Actual Size", mw.canvas.ActualSize),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.updateStatus("Image loaded")
	})
	mw.state.On(app.EventImageReplaced, func(data interface{}) {
		nat := mw.state.NaturalSize()
		mw.updateStatus(fmt.Sprintf("Image is now %.0f×%.0f", nat.Width, nat.Height))
	})
	mw.state.On(app.EventLoadFailed, func(data interface{}) {
		// The previous image (or empty state) stays in place.
		mw.updateStatus("Could not decode that file")
	})
	mw.canvas.OnStrokeDone(func() {
		n := mw.state.Strokes().Len()
		if n == 1 {
			mw.updateStatus("1 stroke")
			return
		}
		mw.updateStatus(fmt.Sprintf("%d strokes", n))
	})
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// onOpenImage asks for a file and hands it to the asynchronous decode path.
func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		mw.saveLastDir(path)
		mw.SetTitle(appTitle + " - " + filepath.Base(path))
		mw.updateStatus("Loading " + filepath.Base(path) + "…")
		mw.state.LoadImageAsync(path)
	}, mw.Window)
	fd.SetFilter(imageFilter)
	if dir := mw.lastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

// onExportPNG flattens the session and writes a lossless PNG.
func (mw *MainWindow) onExportPNG() {
	img := mw.state.Export(mw.canvas.View())
	if img == nil {
		mw.updateStatus("Nothing to export")
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := imaging.WritePNG(writer, img); err != nil {
			log.Printf("export failed: %v", err)
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.saveLastDir(writer.URI().Path())
		mw.updateStatus("Exported " + filepath.Base(writer.URI().Path()))
	}, mw.Window)
	fd.SetFileName(imaging.ExportFilename)
	if dir := mw.lastDir(); dir != nil {
		fd.SetLocation(dir)
	}
	fd.Show()
}

// onExportPDF embeds the flattened raster in a single-page PDF.
func (mw *MainWindow) onExportPDF() {
	img := mw.state.Export(mw.canvas.View())
	if img == nil {
		mw.updateStatus("Nothing to export")
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := imaging.WritePDF(writer, img); err != nil {
			log.Printf("pdf export failed: %v", err)
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(writer.URI().Path()))
	}, mw.Window)
	fd.SetFileName("edited-image.pdf")
	fd.Show()
}

// onCopyToClipboard puts the flattened PNG on the system clipboard.
func (mw *MainWindow) onCopyToClipboard() {
	img := mw.state.Export(mw.canvas.View())
	if img == nil {
		mw.updateStatus("Nothing to copy")
		return
	}
	data, err := imaging.EncodePNG(img)
	if err != nil {
		log.Printf("clipboard export failed: %v", err)
		dialog.ShowError(err, mw.Window)
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
	mw.updateStatus("Copied to clipboard")
}

func (mw *MainWindow) onToggleDarkMode() {
	mw.theme.Dark = !mw.theme.Dark
	mw.prefs.SetBool(prefs.KeyDarkTheme, mw.theme.Dark)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("failed to save preferences: %v", err)
	}
	mw.app.Settings().SetTheme(mw.theme)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About",
		appTitle+" v"+version.Version+"\n\nFilters, freehand annotation, crop and rotate,\nlossless PNG export.",
		mw.Window)
}

func (mw *MainWindow) lastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("failed to save preferences: %v", err)
	}
}
