// Package audio controls the player's PulseAudio stream by process name.
package audio

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mangoba/admute/internal/logger"
)

// sinkInput is the subset of `pactl -f json list sink-inputs` output the
// muter cares about.
type sinkInput struct {
	Index      int               `json:"index"`
	Properties map[string]string `json:"properties"`
}

// processName returns the owning process binary, falling back to the
// application name some players report instead.
func (si sinkInput) processName() string {
	if n := si.Properties["application.process.binary"]; n != "" {
		return n
	}
	return si.Properties["application.name"]
}

func (si sinkInput) matches(process string) bool {
	return strings.EqualFold(si.processName(), process)
}

func listSinkInputs() ([]sinkInput, error) {
	out, err := exec.Command("pactl", "-f", "json", "list", "sink-inputs").Output()
	if err != nil {
		return nil, fmt.Errorf("pactl list sink-inputs: %w", err)
	}
	return parseSinkInputs(out)
}

func parseSinkInputs(data []byte) ([]sinkInput, error) {
	var inputs []sinkInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse pactl output: %w", err)
	}
	return inputs, nil
}

// Available reports whether pactl can be used at all. Checked once at
// startup; absence is fatal for the pulse strategy.
func Available() bool {
	_, err := exec.LookPath("pactl")
	return err == nil
}

// Sessions returns the process names of all active sink inputs, for the
// diagnostic report.
func Sessions() ([]string, error) {
	inputs, err := listSinkInputs()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(inputs))
	for _, si := range inputs {
		names = append(names, si.processName())
	}
	return names, nil
}

// HasSession reports whether any of names matches process, ignoring case.
func HasSession(names []string, process string) bool {
	for _, n := range names {
		if strings.EqualFold(n, process) {
			return true
		}
	}
	return false
}

// PulseActuator mutes the player's sink input directly. Failure to find the
// session returns false and is never fatal; the controller retries later.
type PulseActuator struct {
	process string
	log     *logger.AppLogger
}

func NewPulseActuator(process string, log *logger.AppLogger) *PulseActuator {
	return &PulseActuator{process: process, log: log}
}

func (a *PulseActuator) Name() string { return "pulse" }

func (a *PulseActuator) ApplyMute(mute bool) bool {
	inputs, err := listSinkInputs()
	if err != nil {
		a.log.Warn("could not query audio sessions: %v", err)
		return false
	}

	for _, si := range inputs {
		if !si.matches(a.process) {
			continue
		}
		flag := "0"
		if mute {
			flag = "1"
		}
		if err := exec.Command("pactl", "set-sink-input-mute", strconv.Itoa(si.Index), flag).Run(); err != nil {
			a.log.Warn("pactl set-sink-input-mute %d failed: %v", si.Index, err)
			return false
		}
		if mute {
			a.log.Info("%s muted (pulse sink input #%d)", a.process, si.Index)
		} else {
			a.log.Info("%s unmuted (pulse sink input #%d)", a.process, si.Index)
		}
		return true
	}

	a.log.Warn("%s audio session not found; could not %s", a.process, verb(mute))
	return false
}

func verb(mute bool) string {
	if mute {
		return "mute"
	}
	return "unmute"
}
