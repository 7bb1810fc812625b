package scenes

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/decker502/cavestrike/pkg/config"
	"github.com/decker502/cavestrike/pkg/entities"
	"github.com/decker502/cavestrike/pkg/game"
)

// flatStage builds a stage without terrain variation. The corridor walls
// stay at fixed heights, so scenario tests are deterministic for any seed
// and the player can never clip a wall while flying level.
func flatStage(name string, length float64) config.StageConfig {
	return config.StageConfig{
		Name:              name,
		Length:            length,
		ScrollSpeed:       1.8,
		TerrainTopBase:    50,
		TerrainBottomBase: 70,
		TerrainVariation:  0,
		EnemyTypes:        []string{"scout"},
		TargetTypes:       []string{"fuel"},
	}
}

func testStages() []config.StageConfig {
	return []config.StageConfig{
		flatStage("岩壁峡谷", 90),
		flatStage("熔岩洞窟", 90),
	}
}

func testUnits() *config.UnitTable {
	return &config.UnitTable{
		Enemies: map[string]config.EnemyStats{
			"scout": {
				Behavior: config.BehaviorStraight,
				Speed:    2.0,
				Health:   1,
				Points:   100,
				Width:    24,
				Height:   16,
				RGBA:     color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
			},
		},
		Targets: map[string]config.TargetStats{
			"fuel": {
				Points: 150,
				Fuel:   25,
				Width:  22,
				Height: 18,
				RGBA:   color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff},
			},
		},
	}
}

// newTestScene builds a game scene with a degraded-mode state (no score
// persistence) and neutral keyboard input so frames advance silently.
func newTestScene(t *testing.T, stages []config.StageConfig, seed int64) (*GameScene, *game.GameState) {
	t.Helper()

	state := game.NewGameState(nil, len(stages))
	sm := game.NewSceneManager()
	scene := NewGameScene(sm, state, stages, testUnits(), rand.New(rand.NewSource(seed)))
	scene.readInput = func() game.InputState { return game.InputState{} }
	return scene, state
}

func TestGameSceneImplementsInterfaces(t *testing.T) {
	scene, _ := newTestScene(t, testStages(), 1)

	var _ game.Scene = scene
	var _ game.Saveable = scene

	if _, ok := interface{}(scene).(game.Scene); !ok {
		t.Error("GameScene does not implement game.Scene")
	}
	if _, ok := interface{}(scene).(game.Saveable); !ok {
		t.Error("GameScene does not implement game.Saveable")
	}
}

func TestNewGameSceneStartsPlaying(t *testing.T) {
	scene, state := newTestScene(t, testStages(), 1)

	if state.State() != game.StatePlaying {
		t.Errorf("Expected StatePlaying after construction, got %v", state.State())
	}
	if scene.player == nil {
		t.Fatal("GameScene.player is nil")
	}
	if scene.player.X != scene.player.StartX || scene.player.Y != scene.player.StartY {
		t.Errorf("Expected player at start position (%.1f, %.1f), got (%.1f, %.1f)",
			scene.player.StartX, scene.player.StartY, scene.player.X, scene.player.Y)
	}
	if len(scene.terrain.Segments()) == 0 {
		t.Error("Expected terrain segments after construction")
	}
}

// TestGameSceneFuelExhaustionCrash drives a full tank to empty and checks
// the crash happens on the frame after the gauge reaches exactly zero.
func TestGameSceneFuelExhaustionCrash(t *testing.T) {
	scene, state := newTestScene(t, []config.StageConfig{flatStage("长途", 10000)}, 3)

	// A full tank of 100 at 0.05 per frame lasts exactly 2000 frames.
	const framesToEmpty = 2000

	for i := 0; i < framesToEmpty-1; i++ {
		scene.Update(0.016)
	}
	if scene.player.FuelEmpty() {
		t.Fatalf("Fuel empty one frame early: %v", scene.player.Fuel)
	}

	scene.Update(0.016)
	if scene.player.Fuel != 0 {
		t.Errorf("Expected fuel exactly 0 after %d frames, got %v", framesToEmpty, scene.player.Fuel)
	}
	if scene.player.Lives != config.PlayerStartLives {
		t.Errorf("Expected no life lost on the frame fuel hits 0, got %d lives", scene.player.Lives)
	}

	// The next frame resolves the crash.
	scene.Update(0.016)
	if scene.player.Lives != config.PlayerStartLives-1 {
		t.Errorf("Expected %d lives after fuel crash, got %d", config.PlayerStartLives-1, scene.player.Lives)
	}
	if scene.player.Fuel != config.FuelBailout {
		t.Errorf("Expected bailout fuel %v after crash, got %v", config.FuelBailout, scene.player.Fuel)
	}
	if scene.player.X != scene.player.StartX || scene.player.Y != scene.player.StartY {
		t.Error("Expected player respawned at start position after crash")
	}
	if !scene.player.Invincible {
		t.Error("Expected invincibility after crash respawn")
	}
	if scene.particles.Count() != config.BurstCrash {
		t.Errorf("Expected %d crash particles, got %d", config.BurstCrash, scene.particles.Count())
	}
	if state.State() != game.StatePlaying {
		t.Errorf("Expected run to continue after non-final crash, got %v", state.State())
	}
}

// TestGameSceneStageCompletion scrolls through a 90px stage at 1.8px per
// frame: the transition must begin on frame 50 exactly, hold for the fixed
// pause, then load the next stage with distance reset.
func TestGameSceneStageCompletion(t *testing.T) {
	scene, state := newTestScene(t, testStages(), 5)

	for i := 0; i < 49; i++ {
		scene.Update(0.016)
	}
	if state.State() != game.StatePlaying {
		t.Fatalf("Stage completed early at distance %v", state.Distance())
	}

	scene.Update(0.016)
	if state.State() != game.StateStageTransition {
		t.Fatalf("Expected StateStageTransition after 50 frames, got %v", state.State())
	}
	if state.TransitionRemaining() != config.StageTransitionFrames {
		t.Errorf("Expected transition timer %d, got %d", config.StageTransitionFrames, state.TransitionRemaining())
	}

	for i := 0; i < config.StageTransitionFrames-1; i++ {
		scene.Update(0.016)
	}
	if state.State() != game.StateStageTransition {
		t.Fatal("Transition ended early")
	}

	scene.Update(0.016)
	if state.State() != game.StatePlaying {
		t.Fatalf("Expected StatePlaying after transition, got %v", state.State())
	}
	if state.StageIndex() != 1 {
		t.Errorf("Expected stage index 1, got %d", state.StageIndex())
	}
	if state.Distance() != 0 {
		t.Errorf("Expected distance reset to 0, got %v", state.Distance())
	}
	if got := scene.Snapshot().StageName; got != "熔岩洞窟" {
		t.Errorf("Expected next stage loaded, got %q", got)
	}
	// Fresh terrain starts at the pre-generation margin again.
	if segs := scene.terrain.Segments(); len(segs) == 0 || segs[0].X != -config.TerrainSegmentWidth {
		t.Error("Expected rebuilt terrain for the new stage")
	}
}

// TestGameSceneVictory completes the only stage of a run and expects the
// transition to end in Victory with the best score updated in memory.
func TestGameSceneVictory(t *testing.T) {
	scene, state := newTestScene(t, []config.StageConfig{flatStage("独关", 90)}, 7)
	state.AddScore(500)

	for i := 0; i < 50; i++ {
		scene.Update(0.016)
	}
	if state.State() != game.StateStageTransition {
		t.Fatalf("Expected transition after final stage, got %v", state.State())
	}

	for i := 0; i < config.StageTransitionFrames; i++ {
		scene.Update(0.016)
	}
	if state.State() != game.StateVictory {
		t.Fatalf("Expected StateVictory after last stage, got %v", state.State())
	}
	if state.BestScore() != 500 {
		t.Errorf("Expected best score 500 after victory, got %d", state.BestScore())
	}
}

// TestGameScenePauseFreezesWorld checks that pausing stops fuel drain,
// scrolling and entity motion while explosion particles keep decaying.
func TestGameScenePauseFreezesWorld(t *testing.T) {
	scene, state := newTestScene(t, []config.StageConfig{flatStage("长途", 10000)}, 11)

	for i := 0; i < 5; i++ {
		scene.Update(0.016)
	}
	scene.particles.SpawnBurst(400, 240, 4, crashBurstColor)
	particle := scene.particles.Particles()[0]

	fuelBefore := scene.player.Fuel
	distanceBefore := state.Distance()
	lifeBefore := particle.Life

	state.TransitionTo(game.StatePaused)
	for i := 0; i < 10; i++ {
		scene.Update(0.016)
	}

	if scene.player.Fuel != fuelBefore {
		t.Errorf("Fuel drained while paused: %v -> %v", fuelBefore, scene.player.Fuel)
	}
	if state.Distance() != distanceBefore {
		t.Errorf("World scrolled while paused: %v -> %v", distanceBefore, state.Distance())
	}
	if particle.Life != lifeBefore-10 {
		t.Errorf("Expected particle life %d during pause, got %d", lifeBefore-10, particle.Life)
	}

	state.TransitionTo(game.StatePlaying)
	scene.Update(0.016)
	if scene.player.Fuel >= fuelBefore {
		t.Error("Expected fuel drain to resume after unpause")
	}
}

// TestGameSceneShooting holds the fire key and expects the cooldown to
// space shots ten frames apart.
func TestGameSceneShooting(t *testing.T) {
	scene, _ := newTestScene(t, []config.StageConfig{flatStage("长途", 10000)}, 13)
	scene.readInput = func() game.InputState { return game.InputState{Shoot: true} }

	scene.Update(0.016)
	if len(scene.bullets) != 1 {
		t.Fatalf("Expected 1 bullet after first frame, got %d", len(scene.bullets))
	}
	if !scene.bullets[0].FromPlayer {
		t.Error("Expected a player bullet")
	}
	if scene.bullets[0].X <= scene.player.Right() {
		t.Error("Expected bullet ahead of the player nose")
	}

	// Frames 2..10 are blocked by the cooldown; frame 11 fires again.
	for i := 0; i < 9; i++ {
		scene.Update(0.016)
	}
	if len(scene.bullets) != 1 {
		t.Fatalf("Expected cooldown to block shots, got %d bullets", len(scene.bullets))
	}
	scene.Update(0.016)
	if len(scene.bullets) != 2 {
		t.Errorf("Expected second bullet on frame 11, got %d", len(scene.bullets))
	}
}

// TestGameSceneBombDrop holds the bomb key and expects the longer bomb
// cooldown to space drops 35 frames apart.
func TestGameSceneBombDrop(t *testing.T) {
	scene, _ := newTestScene(t, []config.StageConfig{flatStage("长途", 10000)}, 17)
	scene.readInput = func() game.InputState { return game.InputState{Bomb: true} }

	scene.Update(0.016)
	if len(scene.bombs) != 1 {
		t.Fatalf("Expected 1 bomb after first frame, got %d", len(scene.bombs))
	}

	for i := 0; i < 34; i++ {
		scene.Update(0.016)
	}
	if len(scene.bombs) != 1 {
		t.Fatalf("Expected bomb cooldown to block drops, got %d bombs", len(scene.bombs))
	}
	scene.Update(0.016)
	if len(scene.bombs) != 2 {
		t.Errorf("Expected second bomb on frame 36, got %d", len(scene.bombs))
	}
}

// TestGameSceneSpawning runs one frame at full spawn density and checks
// the placement of the spawned enemy and ground target.
func TestGameSceneSpawning(t *testing.T) {
	stage := flatStage("密集", 10000)
	stage.EnemyDensity = 1.0
	stage.GroundTargetDensity = 1.0
	scene, _ := newTestScene(t, []config.StageConfig{stage}, 19)

	scene.Update(0.016)

	if len(scene.enemies) != 1 {
		t.Fatalf("Expected 1 enemy at full density, got %d", len(scene.enemies))
	}
	if len(scene.targets) != 1 {
		t.Fatalf("Expected 1 ground target at full density, got %d", len(scene.targets))
	}

	// Spawned off the right edge, then advanced once this frame.
	e := scene.enemies[0]
	wantEnemyX := config.GameWindowWidth + config.SpawnOffscreenX - (stage.ScrollSpeed + 2.0)
	if math.Abs(e.X-wantEnemyX) > 1e-9 {
		t.Errorf("Expected enemy X %.2f, got %.2f", wantEnemyX, e.X)
	}

	tgt := scene.targets[0]
	wantTargetX := config.GameWindowWidth + config.SpawnOffscreenX - stage.ScrollSpeed
	if math.Abs(tgt.X-wantTargetX) > 1e-9 {
		t.Errorf("Expected target X %.2f, got %.2f", wantTargetX, tgt.X)
	}
	// Flat floor at 410, target anchored to it.
	wantTargetY := 410.0 - tgt.Height/2
	if math.Abs(tgt.Y-wantTargetY) > 1e-9 {
		t.Errorf("Expected target Y %.2f, got %.2f", wantTargetY, tgt.Y)
	}
}

// TestGameSceneBodyCollision plants an enemy on the player's position and
// expects the ram to cost a life, destroy the enemy and award no score.
func TestGameSceneBodyCollision(t *testing.T) {
	scene, state := newTestScene(t, []config.StageConfig{flatStage("长途", 10000)}, 23)

	stats, ok := testUnits().GetEnemy("scout")
	if !ok {
		t.Fatal("scout missing from the test unit table")
	}
	scene.enemies = append(scene.enemies,
		entities.NewEnemy("scout", stats, scene.player.X, scene.player.Y))

	scene.Update(0.016)

	if scene.player.Lives != config.PlayerStartLives-1 {
		t.Errorf("Expected %d lives after ram, got %d", config.PlayerStartLives-1, scene.player.Lives)
	}
	if !scene.player.Invincible {
		t.Error("Expected invincibility after ram")
	}
	if state.Score() != 0 {
		t.Errorf("Expected no score for a body collision, got %d", state.Score())
	}
	if len(scene.enemies) != 0 {
		t.Errorf("Expected destroyed enemy compacted away, got %d enemies", len(scene.enemies))
	}
	wantParticles := config.BurstDefault + config.BurstPlayerHit
	if scene.particles.Count() != wantParticles {
		t.Errorf("Expected %d particles (enemy burst + player hit), got %d",
			wantParticles, scene.particles.Count())
	}
}

// TestGameSceneGameOverAndRestart exhausts the last life through a fuel
// crash, then restarts the run in place.
func TestGameSceneGameOverAndRestart(t *testing.T) {
	scene, state := newTestScene(t, testStages(), 29)

	scene.player.Lives = 1
	scene.player.Fuel = 0
	scene.Update(0.016)

	if state.State() != game.StateGameOver {
		t.Fatalf("Expected StateGameOver after final crash, got %v", state.State())
	}
	if scene.player.Active {
		t.Error("Expected player destroyed on the final crash")
	}

	scene.restartRun()

	if state.State() != game.StatePlaying {
		t.Fatalf("Expected StatePlaying after restart, got %v", state.State())
	}
	if scene.player.Lives != config.PlayerStartLives {
		t.Errorf("Expected fresh lives after restart, got %d", scene.player.Lives)
	}
	if scene.player.Fuel != config.FuelMax {
		t.Errorf("Expected full tank after restart, got %v", scene.player.Fuel)
	}
	if state.Score() != 0 {
		t.Errorf("Expected score reset after restart, got %d", state.Score())
	}
	if state.StageIndex() != 0 {
		t.Errorf("Expected stage index 0 after restart, got %d", state.StageIndex())
	}
	if scene.particles.Count() != 0 {
		t.Errorf("Expected particles cleared on restart, got %d", scene.particles.Count())
	}
}

// TestGameSceneExitToTitle leaves a finished run and expects the manager
// to be showing the title scene with the state back on the start screen.
func TestGameSceneExitToTitle(t *testing.T) {
	scene, state := newTestScene(t, testStages(), 31)

	scene.player.Lives = 1
	scene.player.Fuel = 0
	scene.Update(0.016)
	if state.State() != game.StateGameOver {
		t.Fatalf("Expected StateGameOver, got %v", state.State())
	}

	scene.exitToTitle()

	if state.State() != game.StateStartScreen {
		t.Errorf("Expected StateStartScreen after exit, got %v", state.State())
	}
	if _, ok := scene.sceneManager.GetCurrentScene().(*TitleScene); !ok {
		t.Errorf("Expected TitleScene on the manager, got %T", scene.sceneManager.GetCurrentScene())
	}
}

// TestGameSceneStageAdvanceKeepsParticles reloads a stage and expects
// burning explosions and the player's tank to carry over.
func TestGameSceneStageAdvanceKeepsParticles(t *testing.T) {
	scene, _ := newTestScene(t, testStages(), 37)

	scene.player.Fuel = 42.5
	scene.particles.SpawnBurst(300, 200, 6, crashBurstColor)
	scene.initStage(1)

	if scene.particles.Count() != 6 {
		t.Errorf("Expected particles to survive the stage reload, got %d", scene.particles.Count())
	}
	if scene.player.Fuel != 42.5 {
		t.Errorf("Expected fuel carried across stages, got %v", scene.player.Fuel)
	}
	if len(scene.enemies) != 0 || len(scene.bullets) != 0 || len(scene.bombs) != 0 {
		t.Error("Expected stage reload to clear combat entities")
	}
}

func TestGameSceneSnapshot(t *testing.T) {
	scene, state := newTestScene(t, testStages(), 41)
	scene.readInput = func() game.InputState { return game.InputState{Shoot: true} }

	scene.Update(0.016)
	snap := scene.Snapshot()

	if snap.State != game.StatePlaying {
		t.Errorf("Expected snapshot state Playing, got %v", snap.State)
	}
	if snap.StageName != "岩壁峡谷" {
		t.Errorf("Expected stage name in snapshot, got %q", snap.StageName)
	}
	if snap.Lives != scene.player.Lives || snap.Fuel != scene.player.Fuel {
		t.Error("Expected snapshot to mirror player lives and fuel")
	}
	if snap.Distance != state.Distance() {
		t.Errorf("Expected snapshot distance %v, got %v", state.Distance(), snap.Distance)
	}
	if snap.Player != scene.player {
		t.Error("Expected snapshot to share the player instance")
	}
	if len(snap.Bullets) != 1 {
		t.Errorf("Expected 1 bullet in snapshot, got %d", len(snap.Bullets))
	}
	if len(snap.Segments) == 0 {
		t.Error("Expected terrain segments in snapshot")
	}
	if snap.TransitionRemaining != 0 {
		t.Errorf("Expected no transition timer while playing, got %d", snap.TransitionRemaining)
	}
}

// TestGameSceneUpdateNoPanic walks Update through every state headlessly.
func TestGameSceneUpdateNoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Update() panicked: %v", r)
		}
	}()

	scene, state := newTestScene(t, testStages(), 43)

	for _, target := range []game.State{
		game.StatePlaying,
		game.StatePaused,
		game.StatePlaying,
		game.StateStageTransition,
	} {
		state.TransitionTo(target)
		scene.Update(0.016)
	}
}

func TestGameSceneSaveOnExit(t *testing.T) {
	scene, _ := newTestScene(t, testStages(), 47)

	if !scene.SaveOnExit() {
		t.Error("Expected SaveOnExit to report success in degraded mode")
	}
}

// TestSceneFactoryStartRun wires a factory the way the app does and starts
// a run on a chosen stage through the scene manager.
func TestSceneFactoryStartRun(t *testing.T) {
	stages := testStages()
	state := game.NewGameState(nil, len(stages))
	sm := game.NewSceneManager()
	sm.SetSceneFactory(func(stageIndex int) game.Scene {
		state.ResetRun()
		state.SetStageIndex(stageIndex)
		scene := NewGameScene(sm, state, stages, testUnits(), rand.New(rand.NewSource(53)))
		scene.readInput = func() game.InputState { return game.InputState{} }
		return scene
	})

	sm.StartRun(1)

	scene, ok := sm.GetCurrentScene().(*GameScene)
	if !ok {
		t.Fatalf("Expected GameScene on the manager, got %T", sm.GetCurrentScene())
	}
	if state.State() != game.StatePlaying {
		t.Errorf("Expected StatePlaying after StartRun, got %v", state.State())
	}
	if state.StageIndex() != 1 {
		t.Errorf("Expected stage index 1, got %d", state.StageIndex())
	}
	if got := scene.Snapshot().StageName; got != "熔岩洞窟" {
		t.Errorf("Expected the second stage loaded, got %q", got)
	}
}
