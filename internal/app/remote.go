package app

import (
	"context"
	"errors"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/photodesk/internal/credential"
	"github.com/nhle/photodesk/internal/studio"
)

// mirrorReadyMsg is sent once the startup connection attempt finished.
// missing is set when no credentials are stored.
type mirrorReadyMsg struct {
	missing bool
}

// connectMirror connects with the credentials kept in the keyring. The
// coordinator reports the outcome as a notice; a missing credential set
// sends the user to the cloud settings instead.
func (m Model) connectMirror() tea.Cmd {
	return connectStored(m.ctx, m.st)
}

func connectStored(ctx context.Context, st *studio.Studio) tea.Cmd {
	return func() tea.Msg {
		err := st.ConnectStored(ctx)
		switch {
		case errors.Is(err, credential.ErrMissing):
			return mirrorReadyMsg{missing: true}
		case err != nil:
			log.Printf("connecting to mirror: %v", err)
		}
		return mirrorReadyMsg{}
	}
}
