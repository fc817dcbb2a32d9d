package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"CasaVision/shared/scenedata"
)

// RenderMode é o modo de saída de um frame. Exatamente um fica ativo
// por vez; a transição é feita pelo chamador entre frames e não tem
// efeito colateral sobre os dados da cena.
type RenderMode int

const (
	ModeRGB RenderMode = iota
	ModeSemantic
	ModeInstance
	ModeDepth
	ModeInvDepth
)

// String devolve o nome do modo para HUD e logs.
func (m RenderMode) String() string {
	switch m {
	case ModeRGB:
		return "rgb"
	case ModeSemantic:
		return "semantic"
	case ModeInstance:
		return "instance"
	case ModeDepth:
		return "depth"
	case ModeInvDepth:
		return "invdepth"
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// ParseMode converte o nome do modo (como vem da configuração).
func ParseMode(s string) (RenderMode, error) {
	switch s {
	case "rgb":
		return ModeRGB, nil
	case "semantic":
		return ModeSemantic, nil
	case "instance":
		return ModeInstance, nil
	case "depth":
		return ModeDepth, nil
	case "invdepth":
		return ModeInvDepth, nil
	}
	return 0, fmt.Errorf("modo de renderização desconhecido: %q", s)
}

// UnsupportedRenderModeError sinaliza um valor de modo fora do conjunto
// enumerado. É fatal para o frame (erro de programação/configuração,
// não de dados) e não adianta repetir o draw.
type UnsupportedRenderModeError struct {
	Mode RenderMode
}

func (e *UnsupportedRenderModeError) Error() string {
	return fmt.Sprintf("modo de renderização não suportado: %d", int(e.Mode))
}

// ShaderVariant é o valor do uniform "mode" interpretado pelo fragment
// shader compartilhado.
type ShaderVariant int

const (
	VariantTextureLighting ShaderVariant = 0 // textura * Kd + iluminação
	VariantLighting        ShaderVariant = 1 // Kd + iluminação
	VariantConstant        ShaderVariant = 2 // cor constante (Kd)
	VariantDepth           ShaderVariant = 3 // profundidade linear
	VariantInvDepth        ShaderVariant = 4 // profundidade inversa 16 bits
)

// DrawCall descreve o draw de uma malha com os uniforms já resolvidos.
type DrawCall struct {
	MeshIndex int
	Variant   ShaderVariant

	// Uniforms do modo RGB.
	Kd       mgl32.Vec3
	Ka       mgl32.Vec3
	Dissolve float32

	// Textura difusa do material (modo RGB). O executor rebaixa para
	// VariantLighting se o handle não estiver disponível na GPU.
	Texname string

	// Cor constante dos modos SEMANTIC/INSTANCE (sobe no uniform Kd).
	ConstColor mgl32.Vec3
}

// FramePlan é o plano completo de um frame: variante/uniforms por
// malha, na ordem estável estabelecida pelo builder.
type FramePlan struct {
	Mode RenderMode

	// Constante de frame do modo INVDEPTH.
	MinDepth float32

	Calls []DrawCall
}

// PlanFrame monta o plano de draw de um frame para o modo pedido. O
// número e a ordem dos draws são idênticos em todos os modos, só os
// uniforms mudam. Modo fora do conjunto enumerado devolve
// UnsupportedRenderModeError.
func PlanFrame(scene *scenedata.Scene, mode RenderMode, minDepth float32) (*FramePlan, error) {
	plan := &FramePlan{
		Mode:  mode,
		Calls: make([]DrawCall, 0, len(scene.Entries)),
	}

	switch mode {
	case ModeRGB:
		for i := range scene.Entries {
			entry := &scene.Entries[i]
			call := DrawCall{
				MeshIndex: i,
				Variant:   VariantLighting,
				Kd:        entry.Material.Diffuse,
				Ka:        entry.Material.Ambient,
				Dissolve:  entry.Material.Dissolve,
			}
			if entry.Material.DiffuseTexname != "" {
				call.Variant = VariantTextureLighting
				call.Texname = entry.Material.DiffuseTexname
			}
			plan.Calls = append(plan.Calls, call)
		}

	case ModeSemantic, ModeInstance:
		for i := range scene.Entries {
			entry := &scene.Entries[i]
			color := entry.LabelColor
			if mode == ModeInstance {
				color = entry.InstanceColor
			}
			plan.Calls = append(plan.Calls, DrawCall{
				MeshIndex:  i,
				Variant:    VariantConstant,
				ConstColor: color,
			})
		}

	case ModeDepth:
		for i := range scene.Entries {
			plan.Calls = append(plan.Calls, DrawCall{MeshIndex: i, Variant: VariantDepth})
		}

	case ModeInvDepth:
		plan.MinDepth = minDepth
		for i := range scene.Entries {
			plan.Calls = append(plan.Calls, DrawCall{MeshIndex: i, Variant: VariantInvDepth})
		}

	default:
		return nil, &UnsupportedRenderModeError{Mode: mode}
	}

	return plan, nil
}
