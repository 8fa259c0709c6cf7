// Package handlers runs character creation sessions over Telnet.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/vestige/internal/frontend/telnet"
	"github.com/cory-johannsen/vestige/internal/observability"
	"github.com/cory-johannsen/vestige/internal/wizard"
)

const helpText = `Commands available at every step:
  next          validate this step and continue
  back          return to the previous step
  look          show the current step again
  help          show this help
  quit          leave; progress is saved after every change
Step commands are listed beneath each step.`

// CreatorHandler implements telnet.SessionHandler: each session runs one
// character creation wizard.
type CreatorHandler struct {
	svc    wizard.Services
	opts   wizard.Options
	logger *zap.Logger
}

// NewCreatorHandler creates a handler sharing svc across sessions.
//
// Precondition: svc must satisfy wizard.Start; logger must be non-nil.
func NewCreatorHandler(svc wizard.Services, opts wizard.Options, logger *zap.Logger) *CreatorHandler {
	return &CreatorHandler{svc: svc, opts: opts, logger: logger}
}

type session struct {
	w      *wizard.Wizard
	conn   *telnet.Conn
	logger *zap.Logger
	form   *form
}

// HandleSession runs the creation flow until the character is created, the
// player quits, or the connection fails.
//
// Postcondition: Returns nil when the player quits or finishes; otherwise the read or write error.
func (h *CreatorHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	logger := observability.SessionLogger(h.logger, conn.ID(), conn.RemoteAddr().String())
	svc := h.svc
	svc.Logger = logger

	w, _, err := wizard.Start(ctx, svc, h.opts)
	if err != nil {
		logger.Error("starting wizard", zap.Error(err))
		_ = conn.WriteLine(RenderError(err))
		return err
	}

	_ = conn.WriteBlock(telnet.Colorize(telnet.Cyan, "Welcome to the Vestige character creator.") + "\n" + telnet.Hint("Type help at any prompt."))
	if svc.State != nil {
		if err := h.offerRestore(ctx, conn, w); err != nil {
			return err
		}
	}

	s := &session{w: w, conn: conn, logger: logger}
	dirty := true
	for {
		if s.form == nil || s.form.step != w.Step() {
			s.form = seedForm(w.View())
			dirty = true
		}
		if w.Step() == wizard.StepComplete {
			_ = conn.WriteBlock(RenderView(w.View()))
			_ = conn.WriteLine("Goodbye.")
			logger.Info("creation session finished", zap.Duration("duration", time.Since(start)))
			return nil
		}
		if dirty {
			if err := conn.WriteBlock(RenderView(w.View())); err != nil {
				return err
			}
			dirty = false
		}
		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "> ")); err != nil {
			return err
		}
		line, err := conn.ReadLine(ctx)
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		cmd := ParseCommand(line)
		switch cmd.Verb {
		case "":
			continue
		case "help", "?":
			_ = conn.WriteBlock(helpText)
			continue
		case "look", "show":
			dirty = true
			continue
		case "quit", "exit":
			if svc.State != nil {
				_ = conn.WriteLine("Your progress has been saved. Goodbye.")
			} else {
				_ = conn.WriteLine("Goodbye.")
			}
			return nil
		}

		if err := s.execute(ctx, cmd); err != nil {
			s.report(cmd, err)
			dirty = errors.Is(err, wizard.ErrConfiguration)
			continue
		}
		dirty = true
	}
}

func (h *CreatorHandler) offerRestore(ctx context.Context, conn *telnet.Conn, w *wizard.Wizard) error {
	_ = conn.WritePrompt("Enter a saved character name to resume, or press Enter to begin: ")
	line, err := conn.ReadLine(ctx)
	if err != nil {
		return fmt.Errorf("reading restore name: %w", err)
	}
	name := strings.TrimSpace(line)
	if name == "" {
		return nil
	}
	if w.Restore(ctx, name) {
		_ = conn.WriteLine(telnet.Colorf(telnet.Green, "Resumed %s.", name))
	} else {
		_ = conn.WriteLine(telnet.Colorf(telnet.Yellow, "No saved draft for %s. Starting fresh.", name))
	}
	return nil
}

func (s *session) report(cmd Command, err error) {
	var usage usageError
	if errors.As(err, &usage) {
		_ = s.conn.WriteLine(telnet.Problem(usage.Error()))
		return
	}
	s.logger.Debug("command rejected", zap.String("verb", cmd.Verb), zap.Error(err))
	_ = s.conn.WriteBlock(RenderError(err))
}
