package match

import (
	"context"
	"fmt"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/ringside/config"
	"github.com/lixenwraith/ringside/scene"
)

// ArenaEnvironment loads a configured arena
type ArenaEnvironment struct {
	Arena config.Arena
}

func (e ArenaEnvironment) Load(ctx context.Context, sc *scene.Scene) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(e.Arena.Surfaces) == 0 {
		return fmt.Errorf("arena has no surfaces")
	}
	for _, s := range e.Arena.Surfaces {
		sc.AddSurface(s.Name, cube.Box(s.Min[0], s.Min[1], s.Min[2], s.Max[0], s.Max[1], s.Max[2]))
	}
	for _, m := range e.Arena.Markers {
		sc.AddMarker(m.Name, mgl32.Vec3(m.Position))
	}
	return nil
}
