package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/richfield/internal/channel"
	"github.com/kobzarvs/richfield/internal/config"
	"github.com/kobzarvs/richfield/internal/editor"
	"github.com/kobzarvs/richfield/internal/logger"
)

var ErrUsage = errors.New("usage: richfield [--debug] [--channel] [--text TEXT]")

// Options are the parsed command line arguments.
type Options struct {
	Debug   bool
	Channel bool
	Text    string
}

// ParseArgs reads the command line. Unknown arguments are an error.
func ParseArgs(args []string) (Options, error) {
	var opts Options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--debug":
			opts.Debug = true
		case "--channel":
			opts.Channel = true
		case "--text":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("--text needs a value: %w", ErrUsage)
			}
			i++
			opts.Text = args[i]
		default:
			return opts, fmt.Errorf("unknown argument %q: %w", args[i], ErrUsage)
		}
	}
	return opts, nil
}

// App is the top-level runtime for richfield.
type App struct {
	args []string
}

func New(args []string) *App {
	return &App{args: args}
}

func (a *App) Run() error {
	opts, err := ParseArgs(a.args)
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.Text != "" {
		cfg.Field.Text = opts.Text
	}
	if err := logger.Init(logger.Options{Debug: opts.Debug, Channel: opts.Channel}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	if opts.Channel {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return ServeChannel(ctx, cfg, os.Stdin, os.Stdout)
	}

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.EnablePaste()
	defer s.Fini()
	return Loop(s, editor.New(cfg))
}

// ServeChannel drives one field over framed calls on r, replying on w.
func ServeChannel(ctx context.Context, cfg config.Config, r io.Reader, w io.Writer) error {
	logger.App.Info("serving method channel")
	srv := channel.NewServer(cfg, w)
	if err := srv.Serve(ctx, r); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Loop renders ed on s and feeds it events until it asks to quit.
func Loop(s tcell.Screen, ed *editor.Editor) error {
	var paste []rune
	pasting := false
	ed.Render(s)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if pasting {
				if ev.Key() == tcell.KeyRune {
					paste = append(paste, ev.Rune())
				} else if ev.Key() == tcell.KeyEnter {
					paste = append(paste, '\n')
				}
				continue
			}
			if ed.HandleKey(ev) {
				return nil
			}
		case *tcell.EventPaste:
			if ev.Start() {
				pasting = true
				paste = paste[:0]
				continue
			}
			pasting = false
			ed.HandlePaste(string(paste))
		case *tcell.EventResize:
			s.Sync()
		}
		ed.Render(s)
	}
}
