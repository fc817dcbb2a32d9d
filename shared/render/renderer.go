package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"fmt"
	"log"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"CasaVision/shared/scenedata"
)

// SceneRenderer executa os frames de uma cena construída: um shader
// compartilhado, um rl.Model por MeshEntry (mesmo índice), despacho por
// modo. A cena é somente-leitura aqui; por frame só mudam o modo e os
// uniforms.
type SceneRenderer struct {
	scene    *scenedata.Scene
	textures *TextureStore

	shader      rl.Shader
	modeLoc     int32
	kdLoc       int32
	kaLoc       int32
	eyeLoc      int32
	dissolveLoc int32
	minDepthLoc int32

	// models[i] corresponde a scene.Entries[i].
	models      []rl.Model
	entryTex    []rl.Texture2D
	entryHasTex []bool

	mode     RenderMode
	minDepth float32
	active   bool
}

// NewSceneRenderer compila o shader compartilhado e captura os uniforms.
// A janela/contexto precisa existir antes.
func NewSceneRenderer(scene *scenedata.Scene, textures *TextureStore, mode RenderMode, minDepth float32) *SceneRenderer {
	r := &SceneRenderer{
		scene:    scene,
		textures: textures,
		mode:     mode,
		minDepth: minDepth,
	}

	r.shader = rl.LoadShaderFromMemory(sceneVertexShader, sceneFragmentShader)

	// Locs é um ponteiro bruto para um array em C de 32 posições.
	locs := unsafe.Slice(r.shader.Locs, 32)
	locs[0] = rl.GetShaderLocation(r.shader, "texture0") // SHADER_LOC_MAP_DIFFUSE

	r.modeLoc = rl.GetShaderLocation(r.shader, "mode")
	r.kdLoc = rl.GetShaderLocation(r.shader, "Kd")
	r.kaLoc = rl.GetShaderLocation(r.shader, "Ka")
	r.eyeLoc = rl.GetShaderLocation(r.shader, "eye")
	r.dissolveLoc = rl.GetShaderLocation(r.shader, "dissolve")
	r.minDepthLoc = rl.GetShaderLocation(r.shader, "minDepth")

	return r
}

// SetMode troca o modo de saída para os próximos frames. Não reconstrói
// nada: o plano de draw muda, a cena não.
func (r *SceneRenderer) SetMode(mode RenderMode) {
	r.mode = mode
}

// Mode devolve o modo ativo.
func (r *SceneRenderer) Mode() RenderMode {
	return r.mode
}

// Activate sobe texturas e malhas para a GPU e resolve o handle de
// textura de cada entrada. Pareia com Deactivate.
func (r *SceneRenderer) Activate(materials []scenedata.Material) error {
	if r.active {
		return nil
	}
	nrMesh := len(r.scene.Entries)
	if nrMesh != len(r.scene.Geometry) {
		return fmt.Errorf("cena dessincronizada: %d entradas, %d geometrias", nrMesh, len(r.scene.Geometry))
	}

	r.textures.Activate(materials)

	r.models = make([]rl.Model, nrMesh)
	r.entryTex = make([]rl.Texture2D, nrMesh)
	r.entryHasTex = make([]bool, nrMesh)

	for i := 0; i < nrMesh; i++ {
		mesh := r.geometryToMesh(&r.scene.Geometry[i])
		rl.UploadMesh(&mesh, false)
		model := rl.LoadModelFromMesh(mesh)
		if model.MaterialCount > 0 {
			mats := unsafe.Slice(model.Materials, model.MaterialCount)
			mats[0].Shader = r.shader
		}
		r.models[i] = model

		if name := r.scene.Entries[i].Material.DiffuseTexname; name != "" {
			if tex, ok := r.textures.Get(name); ok {
				r.entryTex[i] = tex
				r.entryHasTex[i] = true
			}
		}
	}

	r.active = true
	log.Printf("[Renderer] %d malhas ativas na GPU", nrMesh)
	return nil
}

// Deactivate libera malhas e texturas da GPU.
func (r *SceneRenderer) Deactivate() {
	if !r.active {
		return
	}
	for _, model := range r.models {
		rl.UnloadModel(model)
	}
	r.models = nil
	r.entryTex = nil
	r.entryHasTex = nil
	r.textures.Deactivate()
	r.active = false
}

// Unload libera o shader. Chamar depois de Deactivate.
func (r *SceneRenderer) Unload() {
	rl.UnloadShader(r.shader)
}

// Draw emite os draws de um frame no modo ativo, dentro de um bloco
// BeginMode3D. Um draw que falhe é reportado, não repetido.
func (r *SceneRenderer) Draw(cam rl.Camera3D) error {
	if !r.active {
		return fmt.Errorf("renderer não ativado")
	}

	plan, err := PlanFrame(r.scene, r.mode, r.minDepth)
	if err != nil {
		return err
	}

	r.setVec3(r.eyeLoc, mgl32.Vec3{cam.Position.X, cam.Position.Y, cam.Position.Z})

	// DEPTH/INVDEPTH: variante constante no frame, configurada uma vez.
	switch plan.Mode {
	case ModeDepth:
		r.setFloat(r.modeLoc, float32(VariantDepth))
	case ModeInvDepth:
		r.setFloat(r.modeLoc, float32(VariantInvDepth))
		r.setFloat(r.minDepthLoc, plan.MinDepth)
	}

	for i := range plan.Calls {
		r.execute(&plan.Calls[i])
	}
	return nil
}

// execute emite o draw de uma entrada com os uniforms do plano.
func (r *SceneRenderer) execute(call *DrawCall) {
	model := r.models[call.MeshIndex]
	mesh := unsafe.Slice(model.Meshes, model.MeshCount)[0]
	material := unsafe.Slice(model.Materials, model.MaterialCount)[0]

	switch call.Variant {
	case VariantTextureLighting, VariantLighting:
		variant := call.Variant
		if variant == VariantTextureLighting && !r.entryHasTex[call.MeshIndex] {
			// Textura não disponível na GPU: rebaixa para iluminação plana.
			variant = VariantLighting
		}
		r.setVec3(r.kdLoc, call.Kd)
		r.setVec3(r.kaLoc, call.Ka)
		r.setFloat(r.dissolveLoc, call.Dissolve)
		r.setFloat(r.modeLoc, float32(variant))

		if variant == VariantTextureLighting {
			r.drawTextured(mesh, material, r.entryTex[call.MeshIndex])
			return
		}

	case VariantConstant:
		// Cor de rótulo/instância sobe no mesmo uniform Kd.
		r.setVec3(r.kdLoc, call.ConstColor)
		r.setFloat(r.modeLoc, float32(VariantConstant))

	case VariantDepth, VariantInvDepth:
		// Uniforms de frame já configurados em Draw.
	}

	rl.DrawMesh(mesh, material, rl.MatrixIdentity())
}

// drawTextured emite um draw com a textura presa ao material apenas
// durante a chamada: o slot difuso volta ao estado anterior em qualquer
// caminho de saída.
func (r *SceneRenderer) drawTextured(mesh rl.Mesh, material rl.Material, tex rl.Texture2D) {
	prev := unsafe.Slice(material.Maps, 1)[0].Texture
	rl.SetMaterialTexture(&material, rl.MapDiffuse, tex)
	defer rl.SetMaterialTexture(&material, rl.MapDiffuse, prev)

	rl.DrawMesh(mesh, material, rl.MatrixIdentity())
}

func (r *SceneRenderer) setFloat(loc int32, v float32) {
	if loc < 0 {
		return
	}
	rl.SetShaderValue(r.shader, loc, []float32{v}, rl.ShaderUniformFloat)
}

func (r *SceneRenderer) setVec3(loc int32, v mgl32.Vec3) {
	if loc < 0 {
		return
	}
	rl.SetShaderValue(r.shader, loc, []float32{v.X(), v.Y(), v.Z()}, rl.ShaderUniformVec3)
}

// geometryToMesh converte os buffers achatados em rl.Mesh com os dados
// em memória C, como o UploadMesh espera.
func (r *SceneRenderer) geometryToMesh(data *scenedata.GeometryData) rl.Mesh {
	var mesh rl.Mesh
	vCount := int32(data.VertexCount())
	mesh.VertexCount = vCount
	mesh.TriangleCount = vCount / 3

	if len(data.Vertices) > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&data.Vertices[0]), len(data.Vertices)*4))
	}
	if len(data.Normals) > 0 {
		mesh.Normals = (*float32)(copyToC(unsafe.Pointer(&data.Normals[0]), len(data.Normals)*4))
	}
	if len(data.Texcoords) > 0 {
		mesh.Texcoords = (*float32)(copyToC(unsafe.Pointer(&data.Texcoords[0]), len(data.Texcoords)*4))
	}
	return mesh
}

func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}
