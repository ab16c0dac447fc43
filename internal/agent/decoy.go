package agent

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aashig53/InsiderThreatDetector/internal/classify"
)

// decoyPayload is the synthetic bait written into every decoy. The
// credentials are fake; touching this file is what fires the trap.
const decoyPayload = "--- FAKE SENSITIVE DATA ---\n" +
	"AWS_ACCESS_KEY_ID = AKIAFAKEKEY12345\n" +
	"AWS_SECRET_ACCESS_KEY = FAKESECRETKEYabc123xyz\n"

// DecoyController plants honeyfile bait next to suspicious activity. Its
// write is best-effort deception: failures are logged and never propagate
// into the watch loop.
type DecoyController struct {
	user   string
	logger *zap.Logger
}

// NewDecoyController creates a controller deriving decoy names from user.
func NewDecoyController(user string, logger *zap.Logger) *DecoyController {
	return &DecoyController{user: user, logger: logger}
}

// DecoyFileName is the deterministic bait name for this controller's user.
// The marker prefix is what makes the classifier flag any touch as
// Critical.
func (c *DecoyController) DecoyFileName() string {
	return fmt.Sprintf("%s%s.bak", classify.DecoyMarker, c.user)
}

// MaybeDeploy writes a decoy into dir unless one already exists there. The
// existence check and the write are one atomic create-if-absent, so two
// rapid triggers cannot both plant. Returns the decoy path and whether a
// new file was written.
func (c *DecoyController) MaybeDeploy(dir string) (string, bool) {
	path := filepath.Join(dir, c.DecoyFileName())

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			// At most one decoy per directory.
			return path, false
		}
		c.logger.Error("could not deploy decoy", zap.String("path", path), zap.Error(err))
		return "", false
	}
	defer f.Close()

	// The create already fired a notification, so the caller must suppress
	// this path even if the payload write fails.
	if _, err := f.WriteString(decoyPayload); err != nil {
		c.logger.Error("could not write decoy payload", zap.String("path", path), zap.Error(err))
		return path, true
	}

	c.logger.Info("decoy deployed", zap.String("path", path))
	return path, true
}
