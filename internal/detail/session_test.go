package detail_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/albapepper/pokeview/internal/detail"
	"github.com/albapepper/pokeview/internal/prefs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

type recorder struct {
	mu       sync.Mutex
	payloads []detail.Payload
}

func (r *recorder) Present(p detail.Payload) {
	r.mu.Lock()
	r.payloads = append(r.payloads, p)
	r.mu.Unlock()
}

func (r *recorder) all() []detail.Payload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]detail.Payload(nil), r.payloads...)
}

func (r *recorder) last() detail.Payload {
	all := r.all()
	if len(all) == 0 {
		return detail.Payload{}
	}
	return all[len(all)-1]
}

func newSession(t *testing.T, up *fakeUpstream, lang string) (*detail.Session, *prefs.Manager, *recorder) {
	t.Helper()
	store := prefs.NewMemoryStore()
	manager := prefs.NewManager(context.Background(), store, "test", lang, nil)
	rec := &recorder{}
	s := detail.NewSession(context.Background(), detail.NewAssembler(up, nil, 4, nil), manager, rec, nil)
	t.Cleanup(s.Close)
	return s, manager, rec
}

func TestSession_ShowLoadingThenLoaded(t *testing.T) {
	up := newFakeUpstream()
	bulbasaurLine(up)
	s, _, rec := newSession(t, up, "en")

	gen := s.Show("bulbasaur")
	s.Wait()

	got := rec.all()
	require.Len(t, got, 2)
	assert.Equal(t, detail.StateLoading, got[0].State)
	assert.Equal(t, "Loading...", got[0].Labels["loading"])
	assert.Equal(t, detail.StateLoaded, got[1].State)
	assert.Equal(t, gen, got[1].Generation)
	assert.Equal(t, "bulbasaur", s.Key())
}

func TestSession_EmptyKeyIsIdle(t *testing.T) {
	s, _, rec := newSession(t, newFakeUpstream(), "id")

	s.Show("")
	s.Wait()

	p := rec.last()
	assert.Equal(t, detail.StateIdle, p.State)
	assert.Equal(t, "Tidak ada Pokémon dipilih.", p.Labels["no_selection"])
}

func TestSession_DiscardsStaleRender(t *testing.T) {
	up := newFakeUpstream()
	bulbasaurLine(up)
	up.pokemon["slowpoke"] = pokemon(79, "slowpoke", "water", "psychic")
	release := up.gate("slowpoke")
	s, _, rec := newSession(t, up, "en")

	slow := s.Show("slowpoke")
	fast := s.Show("bulbasaur")
	require.Greater(t, fast, slow)

	require.Eventually(t, func() bool {
		return rec.last().State == detail.StateLoaded
	}, time.Second, 5*time.Millisecond)

	close(release)
	s.Wait()

	final := rec.last()
	assert.Equal(t, detail.StateLoaded, final.State)
	assert.Equal(t, "bulbasaur", final.Detail.Name)
	assert.Equal(t, fast, final.Generation)
	for _, p := range rec.all() {
		if p.Generation == slow {
			assert.Equal(t, detail.StateLoading, p.State, "stale render must not be presented")
		}
	}
}

func TestSession_LanguageChangeRerenders(t *testing.T) {
	up := newFakeUpstream()
	bulbasaurLine(up)
	s, manager, rec := newSession(t, up, "en")

	first := s.Show("bulbasaur")
	s.Wait()
	assert.Equal(t, "Grass", rec.last().Detail.Types[0].Label)

	require.NoError(t, manager.SetLanguage(context.Background(), "id-ID"))
	s.Wait()

	p := rec.last()
	assert.Greater(t, p.Generation, first)
	assert.Equal(t, detail.StateLoaded, p.State)
	assert.Equal(t, "id", p.Language)
	assert.Equal(t, "Rumput", p.Detail.Types[0].Label)
}

func TestSession_ThemeChangeDoesNotRerender(t *testing.T) {
	up := newFakeUpstream()
	bulbasaurLine(up)
	s, manager, rec := newSession(t, up, "en")

	gen := s.Show("bulbasaur")
	s.Wait()
	count := len(rec.all())

	require.NoError(t, manager.SetTheme(context.Background(), prefs.ThemeDark))
	s.Wait()

	assert.Equal(t, gen, s.Generation())
	assert.Len(t, rec.all(), count)
}

func TestSession_CloseStopsRenders(t *testing.T) {
	up := newFakeUpstream()
	bulbasaurLine(up)
	s, manager, rec := newSession(t, up, "en")

	s.Show("bulbasaur")
	s.Close()
	count := len(rec.all())

	s.Show("ivysaur")
	require.NoError(t, manager.SetLanguage(context.Background(), "id"))
	s.Wait()
	assert.Len(t, rec.all(), count)
}
