package timeline

import (
	"encoding/json"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caption-studio-server/models"
)

func newTestEngine() (*Engine, *ManualClock) {
	clock := NewManualClock()
	e := NewEngine(clock)
	n := 0
	e.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return e, clock
}

func TestCaptionIsActiveClosedInterval(t *testing.T) {
	seg := models.CaptionSegment{Start: 1, End: 3}
	tests := []struct {
		t    float64
		want bool
	}{
		{0.9, false},
		{1, true},
		{2, true},
		{3, true},
		{3.0001, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seg.IsActive(tt.t), "t=%v", tt.t)
	}
}

func TestImportScript(t *testing.T) {
	e, _ := newTestEngine()
	e.AddCaption("old")

	got := e.ImportScript("a\nb\n\nc")
	require.Len(t, got, 3)

	var texts []string
	var starts, ends []float64
	for _, c := range got {
		texts = append(texts, c.Text)
		starts = append(starts, c.Start)
		ends = append(ends, c.End)
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
	assert.Equal(t, []float64{0, 2, 4}, starts)
	assert.Equal(t, []float64{2, 4, 6}, ends)
	assert.Equal(t, got, e.Captions(), "import replaces the collection")
}

func TestImportScriptTrimsAndDropsWhitespaceLines(t *testing.T) {
	e, _ := newTestEngine()
	got := e.ImportScript("  first  \r\n   \n\tsecond\n")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)

	kept := e.ImportScript("\n \n")
	assert.Equal(t, got, kept, "a blank script keeps the existing captions")
	assert.Equal(t, got, e.Captions())
}

func TestAddCaption(t *testing.T) {
	e, clock := newTestEngine()
	clock.Seek(3.25)

	first := e.AddCaption("")
	assert.Equal(t, models.DefaultCaptionText, first.Text)
	assert.Equal(t, 3.3, first.Start)
	assert.Equal(t, 5.3, first.End)

	second := e.AddCaption("next")
	assert.Equal(t, 5.3, second.Start, "starts at the previous end")
	assert.Equal(t, 7.3, second.End)

	clock.Seek(20)
	third := e.AddCaption("later")
	assert.Equal(t, 20.0, third.Start, "starts at the playhead when it is later")
	assert.NotEqual(t, second.ID, third.ID)
}

func TestRetimeClampsRoundsAndSeeks(t *testing.T) {
	e, clock := newTestEngine()
	seg := e.AddCaption("x")

	start, end, err := e.Retime(seg.ID, BoundEnd, 4.26)
	require.NoError(t, err)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 4.3, end)
	assert.Equal(t, 4.3, clock.CurrentTime())

	start, _, err = e.Retime(seg.ID, BoundStart, -3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, start)
	assert.Equal(t, 0.0, clock.CurrentTime())

	start, _, err = e.Retime(seg.ID, BoundStart, math.NaN())
	require.NoError(t, err)
	assert.Equal(t, 0.0, start)
}

func TestRetimeSwapsInvertedBounds(t *testing.T) {
	e, _ := newTestEngine()
	seg := e.AddCaption("x")

	start, end, err := e.Retime(seg.ID, BoundStart, 5)
	require.NoError(t, err)
	assert.Equal(t, 2.0, start)
	assert.Equal(t, 5.0, end)
}

func TestAdjustTime(t *testing.T) {
	e, clock := newTestEngine()
	seg := e.AddCaption("x")

	_, end, err := e.AdjustTime(seg.ID, BoundEnd, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 2.1, end)
	assert.Equal(t, 2.1, clock.CurrentTime())

	for i := 0; i < 3; i++ {
		_, end, err = e.AdjustTime(seg.ID, BoundEnd, 0.1)
		require.NoError(t, err)
	}
	assert.Equal(t, 2.4, end, "repeated steps stay on the 0.1 grid")

	start, _, err := e.AdjustTime(seg.ID, BoundStart, -10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, start, "negative deltas clamp at zero")
}

func TestRetimeCapsHugeValues(t *testing.T) {
	e, clock := newTestEngine()
	seg := e.AddCaption("x")

	_, end, err := e.Retime(seg.ID, BoundEnd, 1e308)
	require.NoError(t, err)
	assert.Equal(t, float64(MaxTime), end)
	assert.Equal(t, float64(MaxTime), clock.CurrentTime())

	_, end, err = e.AdjustTime(seg.ID, BoundEnd, math.Inf(1))
	require.NoError(t, err)
	assert.Equal(t, float64(MaxTime), end)

	_, err = json.Marshal(e.Captions())
	assert.NoError(t, err)
}

func TestConcurrentAdjustsAreNotLost(t *testing.T) {
	e, _ := newTestEngine()
	seg := e.AddCaption("x")

	const workers, steps = 16, 50
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < steps; i++ {
				_, _, err := e.AdjustTime(seg.ID, BoundEnd, 1)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	got := e.Captions()[0]
	assert.Equal(t, 2.0+workers*steps, got.End)
}

func TestSyncToPlayhead(t *testing.T) {
	e, clock := newTestEngine()
	seg := e.AddCaption("x")
	clock.Seek(1.44)

	start, end, err := e.SyncToPlayhead(seg.ID, BoundStart)
	require.NoError(t, err)
	assert.Equal(t, 1.4, start)
	assert.Equal(t, 2.0, end)
}

func TestUnknownIDs(t *testing.T) {
	e, _ := newTestEngine()

	_, _, err := e.Retime("missing", BoundStart, 1)
	assert.ErrorIs(t, err, ErrUnknownSegment)
	_, _, err = e.AdjustTime("missing", BoundEnd, 1)
	assert.ErrorIs(t, err, ErrUnknownSegment)
	assert.ErrorIs(t, e.RemoveCaption("missing"), ErrUnknownSegment)
	_, err = e.UpdateCaptionText("missing", "x")
	assert.ErrorIs(t, err, ErrUnknownSegment)
	_, err = e.UpdateAsset("missing", SetAssetScale(2))
	assert.ErrorIs(t, err, ErrUnknownAsset)
	assert.ErrorIs(t, e.RemoveAsset("missing"), ErrUnknownAsset)

	seg := e.AddCaption("x")
	_, _, err = e.Retime(seg.ID, Bound("middle"), 1)
	assert.ErrorIs(t, err, ErrInvalidBound)
}

func TestRemoveCaptionKeepsOthers(t *testing.T) {
	e, _ := newTestEngine()
	e.ImportScript("a\nb\nc\nd")
	before := e.Captions()

	require.NoError(t, e.RemoveCaption(before[1].ID))

	after := e.Captions()
	require.Len(t, after, 3)
	assert.Equal(t, []models.CaptionSegment{before[0], before[2], before[3]}, after)
}

func TestActiveCaptionFirstMatchWins(t *testing.T) {
	e, _ := newTestEngine()
	require.NoError(t, e.Replace([]models.CaptionSegment{
		{ID: "a", Start: 0, End: 4, Text: "first"},
		{ID: "b", Start: 2, End: 6, Text: "second"},
	}, nil))

	got, ok := e.ActiveCaption(3)
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	got, ok = e.ActiveCaption(5)
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	_, ok = e.ActiveCaption(6.5)
	assert.False(t, ok)
}

func TestReplaceRejectsUnknownAssetValues(t *testing.T) {
	e, _ := newTestEngine()
	e.AddCaption("keep")

	err := e.Replace(nil, []models.AssetSegment{{ID: "a1", End: 2, Animation: "not-a-preset"}})
	assert.ErrorIs(t, err, ErrInvalidValue)
	err = e.Replace(nil, []models.AssetSegment{{ID: "a1", End: 2, Type: "gif"}})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Len(t, e.Captions(), 1, "a rejected load changes nothing")

	require.NoError(t, e.Replace(nil, []models.AssetSegment{{ID: "a1", End: 2}}))
	got := e.Assets()
	require.Len(t, got, 1)
	assert.Equal(t, models.AnimationNone, got[0].Animation)
	assert.Equal(t, models.AssetTypeImage, got[0].Type)
}

func TestActiveAssets(t *testing.T) {
	e, _ := newTestEngine()
	e.AddAsset(models.AssetSegment{ID: "a", Start: 0, End: 5})
	e.AddAsset(models.AssetSegment{ID: "b", Start: 2, End: 4})
	assert.Len(t, e.ActiveAssets(3), 2)
	assert.Len(t, e.ActiveAssets(4.5), 1)

	e.AddAsset(models.AssetSegment{ID: "c", Start: 10, End: 12})
	assert.Len(t, e.ActiveAssets(3), 2, "a non-overlapping asset does not change the set")
	active := e.ActiveAssets(11)
	require.Len(t, active, 1)
	assert.Equal(t, "c", active[0].ID)
}

func TestAddAssetDefaultsAndRetime(t *testing.T) {
	e, clock := newTestEngine()
	a := e.AddAsset(models.AssetSegment{Start: 1, End: 6, X: 150, Y: -3})
	assert.Equal(t, "asset-id-1", a.ID)
	assert.Equal(t, models.AssetTypeImage, a.Type)
	assert.Equal(t, 1.0, a.Scale)
	assert.Equal(t, models.DefaultPerspective, a.Perspective)
	assert.Equal(t, 100.0, a.X)
	assert.Equal(t, 0.0, a.Y)

	_, end, err := e.AdjustTime(a.ID, BoundEnd, -0.5)
	require.NoError(t, err)
	assert.Equal(t, 5.5, end)
	assert.Equal(t, 5.5, clock.CurrentTime())
}

func TestMoveAssetToClamps(t *testing.T) {
	e, _ := newTestEngine()
	a := e.AddAsset(models.AssetSegment{X: 50, Y: 50})

	moved, err := e.MoveAssetTo(a.ID, 120, -5)
	require.NoError(t, err)
	assert.Equal(t, 100.0, moved.X)
	assert.Equal(t, 0.0, moved.Y)
}

func TestSnapshotIsACopy(t *testing.T) {
	e, _ := newTestEngine()
	e.AddCaption("x")
	snap := e.Snapshot()
	snap.Captions[0].Text = "mutated"
	assert.Equal(t, "x", e.Captions()[0].Text)
}

func TestSnapshotDuration(t *testing.T) {
	snap := Snapshot{
		Captions: []models.CaptionSegment{{End: 4}},
		Assets:   []models.AssetSegment{{End: 7.5}},
	}
	assert.Equal(t, 7.5, snap.Duration())
	assert.Equal(t, 0.0, Snapshot{}.Duration())
}
