// Command imagepush publishes a directory of photos into a gallery album.
// It copies supported images into the static tree, records each one in the
// album document, then commits and pushes the result with git.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/lingyue/inkwell/content"
)

const jpegQuality = 80

var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

func main() {
	contentDir := flag.String("content", "content", "content directory holding images/albums.json")
	staticDir := flag.String("static", "public", "static directory images are copied into")
	maxWidth := flag.Int("maxwidth", 0, "resize jpeg/png wider than this to fit (0 disables)")
	message := flag.String("m", "", "git commit message (default \"gallery: add N images to <album>\")")
	noGit := flag.Bool("no-git", false, "skip the git add/commit/push step")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: imagepush [flags] <source-dir> <album-slug>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	srcDir, slug := flag.Arg(0), flag.Arg(1)

	if err := run(srcDir, slug, *contentDir, *staticDir, *maxWidth, *message, *noGit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(srcDir, slug, contentDir, staticDir string, maxWidth int, message string, noGit bool) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("source dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", srcDir)
	}

	dirs := content.DefaultDirs()
	store := content.NewAlbumStore(filepath.Join(contentDir, filepath.FromSlash(dirs.Albums)))
	if _, err := store.Get(slug); err != nil {
		if errors.Is(err, content.ErrNotFound) {
			return fmt.Errorf("album %q does not exist; create it in the admin dashboard first", slug)
		}
		return err
	}

	destDir := filepath.Join(staticDir, "images", slug)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return err
	}

	version, err := store.Version()
	if err != nil {
		return err
	}

	added := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if !supportedExts[ext] {
			continue
		}

		outName, w, h, err := publishFile(filepath.Join(srcDir, name), destDir, ext, maxWidth)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  skipping %s: %v\n", name, err)
			continue
		}

		img := content.GalleryImage{
			Src:    "/public/images/" + slug + "/" + outName,
			Alt:    strings.TrimSuffix(name, filepath.Ext(name)),
			Width:  w,
			Height: h,
		}
		if _, err := store.AddImage(slug, img, version); err != nil {
			return fmt.Errorf("record %s: %w", outName, err)
		}
		version++
		added++
		fmt.Printf("  added %s (%dx%d)\n", outName, w, h)
	}

	if added == 0 {
		fmt.Println("No supported images found; nothing to publish.")
		return nil
	}
	fmt.Printf("Added %d images to album %q.\n", added, slug)

	if noGit {
		return nil
	}
	if message == "" {
		message = fmt.Sprintf("gallery: add %d images to %s", added, slug)
	}
	return gitPublish(message, destDir, filepath.Join(contentDir, filepath.FromSlash(dirs.Albums)))
}

// publishFile copies one image into destDir and reports its stored filename
// and pixel dimensions. Oversized jpeg/png files are resized and re-encoded
// as jpeg when maxWidth is set; webp and gif are always copied untouched.
func publishFile(srcPath, destDir, ext string, maxWidth int) (string, int, int, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return "", 0, 0, err
	}
	defer f.Close()

	name := filepath.Base(srcPath)

	if maxWidth > 0 && (ext == ".jpg" || ext == ".jpeg" || ext == ".png") {
		img, _, err := image.Decode(f)
		if err != nil {
			return "", 0, 0, fmt.Errorf("decode: %w", err)
		}
		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		if w > maxWidth {
			newH := h * maxWidth / w
			dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
			draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
			img = dst
			w, h = maxWidth, newH
		}
		outName := strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
		out, err := os.Create(filepath.Join(destDir, outName))
		if err != nil {
			return "", 0, 0, err
		}
		defer out.Close()
		if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return "", 0, 0, fmt.Errorf("encode jpeg: %w", err)
		}
		return outName, w, h, nil
	}

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return "", 0, 0, fmt.Errorf("decode: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", 0, 0, err
	}
	out, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return "", 0, 0, err
	}
	defer out.Close()
	if _, err := io.Copy(out, f); err != nil {
		return "", 0, 0, err
	}
	return name, cfg.Width, cfg.Height, nil
}

// gitPublish stages the copied images and the album document, commits, and
// pushes. Git output goes straight to the terminal.
func gitPublish(message string, paths ...string) error {
	steps := [][]string{
		append([]string{"add"}, paths...),
		{"commit", "-m", message},
		{"push"},
	}
	for _, args := range steps {
		cmd := exec.Command("git", args...)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("git %s: %w", args[0], err)
		}
	}
	return nil
}
