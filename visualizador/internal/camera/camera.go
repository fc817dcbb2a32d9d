package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"CasaVision/shared/util"
)

// CameraController gerencia a câmera orbital do visualizador: um ponto
// de interesse, dois ângulos e zoom, tudo interpolado para movimento
// suave.
type CameraController struct {
	// Estado interno do Raylib
	RLCamera rl.Camera3D

	// Configurações
	MinZoom      float32
	MaxZoom      float32
	MoveSpeed    float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave)

	// Estado alvo (para interpolação)
	TargetLookAt rl.Vector3
	TargetZoom   float32
	TargetAngleY float32 // rotação horizontal (radianos)
	TargetAngleX float32 // rotação vertical (radianos)

	// Estado atual (interpolado)
	CurrentLookAt rl.Vector3
	CurrentZoom   float32
}

// New cria um controlador olhando para center, com zoom proporcional à
// extensão da cena.
func New(center rl.Vector3, extent float32) *CameraController {
	if extent <= 0 {
		extent = 10
	}
	c := &CameraController{
		MinZoom:      extent * 0.05,
		MaxZoom:      extent * 4.0,
		MoveSpeed:    extent * 0.5,
		RotateSpeed:  2.0,
		ZoomSpeed:    extent * 0.15,
		SmoothFactor: 0.15,

		TargetLookAt: center,
		TargetZoom:   extent * 1.2,
		TargetAngleY: 45.0 * rl.Deg2rad,
		TargetAngleX: -30.0 * rl.Deg2rad,
	}

	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	c.Update(1.0)
	return c
}

// HandleInput processa WASD, arrasto do mouse e zoom. Devolve true se
// houve interação.
func (c *CameraController) HandleInput(dt float32) bool {
	moved := false

	// Rotação com botão direito
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			c.TargetAngleY -= delta.X * 0.005 * c.RotateSpeed
			c.TargetAngleX -= delta.Y * 0.005 * c.RotateSpeed
			c.TargetAngleX = util.Clamp(c.TargetAngleX, -1.5, 1.5)
			moved = true
		}
	}

	// Zoom com a roda
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		c.TargetZoom = util.Clamp(c.TargetZoom-wheel*c.ZoomSpeed, c.MinZoom, c.MaxZoom)
		moved = true
	}

	// Pan com WASD no plano da câmera
	var dx, dz float32
	if rl.IsKeyDown(rl.KeyW) {
		dz -= 1
	}
	if rl.IsKeyDown(rl.KeyS) {
		dz += 1
	}
	if rl.IsKeyDown(rl.KeyA) {
		dx -= 1
	}
	if rl.IsKeyDown(rl.KeyD) {
		dx += 1
	}
	if dx != 0 || dz != 0 {
		sin, cos := float32(math.Sin(float64(c.TargetAngleY))), float32(math.Cos(float64(c.TargetAngleY)))
		c.TargetLookAt.X += (dx*cos - dz*sin) * c.MoveSpeed * dt
		c.TargetLookAt.Z += (dx*sin + dz*cos) * c.MoveSpeed * dt
		moved = true
	}

	return moved
}

// Update interpola o estado atual em direção ao alvo e recalcula a
// posição da câmera. Deve ser chamado a cada frame.
func (c *CameraController) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt
	if factor > 1.0 {
		factor = 1.0
	}

	// Conversão rl.Vector3 -> mgl32.Vec3 para lerp vetorial
	cur := mgl32.Vec3{c.CurrentLookAt.X, c.CurrentLookAt.Y, c.CurrentLookAt.Z}
	tgt := mgl32.Vec3{c.TargetLookAt.X, c.TargetLookAt.Y, c.TargetLookAt.Z}
	lerped := cur.Add(tgt.Sub(cur).Mul(factor))
	c.CurrentLookAt = rl.Vector3{X: lerped.X(), Y: lerped.Y(), Z: lerped.Z()}

	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)

	// Posição orbital a partir dos ângulos e do zoom
	cosX := float32(math.Cos(float64(c.TargetAngleX)))
	offset := rl.Vector3{
		X: c.CurrentZoom * cosX * float32(math.Sin(float64(c.TargetAngleY))),
		Y: c.CurrentZoom * -float32(math.Sin(float64(c.TargetAngleX))),
		Z: c.CurrentZoom * cosX * float32(math.Cos(float64(c.TargetAngleY))),
	}

	c.RLCamera.Target = c.CurrentLookAt
	c.RLCamera.Position = rl.Vector3{
		X: c.CurrentLookAt.X + offset.X,
		Y: c.CurrentLookAt.Y + offset.Y,
		Z: c.CurrentLookAt.Z + offset.Z,
	}
}
