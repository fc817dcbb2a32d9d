// CasaVision Servidor: renderiza a cena offscreen e transmite os frames
// (RGB, semântico, instância, profundidade) para agentes conectados via
// WebSocket.
package main

import (
	"image/color"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gorilla/websocket"

	"CasaVision/shared/config"
	"CasaVision/shared/proto/cvnet"
	"CasaVision/shared/render"
	"CasaVision/shared/scenedata"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub gerencia as conexões WebSocket ativas.
type Hub struct {
	clients    map[*websocket.Conn]*sync.Mutex
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func newHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		broadcast:  make(chan []byte, 64), // bufferizado para não travar o loop de render
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *Hub) run() {
	for {
		select {
		case client, ok := <-h.register:
			if !ok {
				return
			}
			h.mu.Lock()
			h.clients[client] = &sync.Mutex{}
			h.mu.Unlock()
			log.Printf("[Hub] Agente registrado: %s", client.RemoteAddr())

		case client, ok := <-h.unregister:
			if !ok {
				return
			}
			h.mu.Lock()
			if lock, ok := h.clients[client]; ok {
				lock.Lock()
				delete(h.clients, client)
				client.Close()
				lock.Unlock()
				log.Printf("[Hub] Agente desregistrado: %s", client.RemoteAddr())
			}
			h.mu.Unlock()

		case message, ok := <-h.broadcast:
			if !ok {
				return
			}
			h.mu.Lock()
			type clientEntry struct {
				conn *websocket.Conn
				lock *sync.Mutex
			}
			targets := make([]clientEntry, 0, len(h.clients))
			for c, l := range h.clients {
				targets = append(targets, clientEntry{c, l})
			}
			h.mu.Unlock()

			for _, target := range targets {
				target.lock.Lock()
				err := target.conn.WriteMessage(websocket.BinaryMessage, message)
				target.lock.Unlock()
				if err != nil {
					log.Printf("[Hub] Erro ao enviar para agente %s: %v", target.conn.RemoteAddr(), err)
					target.conn.Close()
					h.mu.Lock()
					delete(h.clients, target.conn)
					h.mu.Unlock()
				}
			}
		}
	}
}

// HasClients informa se há agentes conectados (evita codificar frames à toa).
func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

// handleWS registra o agente e fica lendo ModeRequests.
func handleWS(hub *Hub, modeCh chan<- render.RenderMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[WS] Falha no upgrade: %v", err)
			return
		}
		hub.register <- conn

		go func() {
			defer func() { hub.unregister <- conn }()
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					return
				}
				var req cvnet.ModeRequest
				if err := req.Unmarshal(data); err != nil {
					log.Printf("[WS] ModeRequest inválido de %s: %v", conn.RemoteAddr(), err)
					continue
				}
				modeCh <- render.RenderMode(req.Mode)
			}
		}()
	}
}

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(os.Stdout)
	log.Println("Iniciando CasaVision Servidor")
	log.Printf("Usando GoLang: [%s]", runtime.Version())
}

func main() {
	cfg := config.Load()

	mode, err := render.ParseMode(cfg.RenderMode)
	if err != nil {
		log.Fatalf("[Main] %v", err)
	}

	// Janela oculta: só precisamos do contexto de GPU.
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle+" Servidor")
	defer rl.CloseWindow()
	rl.SetClipPlanes(float64(render.Near), float64(render.Far))

	textures := render.NewTextureStore(cfg.TextureDir)

	scene, src, err := scenedata.Assemble(scenedata.AssembleOptions{
		ScenePath:            cfg.ScenePath,
		ModelCategoryFile:    cfg.ModelCategoryFile,
		SemanticColorFile:    cfg.SemanticColorFile,
		ModelBlacklistFile:   cfg.ModelBlacklistFile,
		ExcludedCategories:   cfg.ExcludedCategories,
		FineGrainedThreshold: cfg.FineGrainedThreshold,
		ColorSeed:            cfg.ColorSeed,
		TextureHasAlpha:      textures.HasAlphaChannel,
	})
	if err != nil {
		log.Fatalf("[Main] Falha ao montar cena: %v", err)
	}

	if catalog, err := scenedata.OpenCatalog(cfg.CatalogPath); err != nil {
		log.Printf("[Main] Catálogo indisponível: %v", err)
	} else {
		if err := catalog.SaveScene(cfg.ScenePath, src.OriginalNumShapes, scene); err != nil {
			log.Printf("[Main] Falha ao catalogar cena: %v", err)
		}
		defer catalog.Close()
	}

	renderer := render.NewSceneRenderer(scene, textures, mode, cfg.MinDepth)
	if err := renderer.Activate(src.Materials); err != nil {
		log.Fatalf("[Main] Falha ao ativar renderer: %v", err)
	}
	defer func() {
		renderer.Deactivate()
		renderer.Unload()
	}()

	// Câmera fixa olhando para o centro da cena; a navegação é do
	// agente consumidor, não deste servidor.
	center := scene.Center()
	extent := scene.Extent()
	cam := rl.Camera3D{
		Position:   rl.Vector3{X: center.X() + extent*0.8, Y: center.Y() + extent*0.6, Z: center.Z() + extent*0.8},
		Target:     rl.Vector3{X: center.X(), Y: center.Y(), Z: center.Z()},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	target := rl.LoadRenderTexture(cfg.WindowWidth, cfg.WindowHeight)
	defer rl.UnloadRenderTexture(target)

	hub := newHub()
	go hub.run()

	modeCh := make(chan render.RenderMode, 8)
	http.HandleFunc("/ws", handleWS(hub, modeCh))
	go func() {
		log.Printf("[Main] Servindo frames em ws://%s/ws", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
			log.Fatalf("[Main] Falha no servidor HTTP: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TargetFPS))
	defer ticker.Stop()

	bg := scene.Background
	clearColor := rl.NewColor(uint8(bg.X()*255), uint8(bg.Y()*255), uint8(bg.Z()*255), 255)

	for {
		select {
		case <-stop:
			log.Println("[Main] Encerrando")
			return

		case m := <-modeCh:
			if m < render.ModeRGB || m > render.ModeInvDepth {
				log.Printf("[Main] ModeRequest fora do intervalo: %d", m)
				continue
			}
			renderer.SetMode(m)
			log.Printf("[Main] Modo de renderização: %s", m)

		case <-ticker.C:
			rl.BeginTextureMode(target)
			rl.ClearBackground(clearColor)
			rl.BeginMode3D(cam)
			if err := renderer.Draw(cam); err != nil {
				log.Printf("[Main] Falha no frame: %v", err)
			}
			rl.EndMode3D()
			rl.EndTextureMode()

			if !hub.HasClients() {
				continue
			}

			frame := captureFrame(target, renderer.Mode(), cfg.MinDepth)
			hub.broadcast <- frame.Marshal()
		}
	}
}

// captureFrame lê o render texture de volta para a CPU e monta a
// mensagem do stream. Render textures vêm com o eixo Y invertido; as
// linhas são reordenadas aqui para o frame sair com a linha de cima
// primeiro.
func captureFrame(target rl.RenderTexture2D, mode render.RenderMode, minDepth float32) *cvnet.FrameMessage {
	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)

	// LoadImageColors aloca em memória C; precisa do unload pareado.
	colors := rl.LoadImageColors(img)
	if len(colors) > 0 {
		defer rl.UnloadImageColors(colors)
	}

	w := int(target.Texture.Width)
	h := int(target.Texture.Height)

	return &cvnet.FrameMessage{
		Mode:     int32(mode),
		Width:    int32(w),
		Height:   int32(h),
		MinDepth: minDepth,
		Pixels:   packPixels(colors, w, h),
	}
}

// packPixels achata os pixels em RGBA8 com a linha de cima primeiro,
// invertendo as linhas (render textures vêm com o eixo Y invertido). O
// resultado é uma cópia: o slice de entrada pode ser liberado em seguida.
func packPixels(colors []color.RGBA, w, h int) []byte {
	pixels := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		srcRow := (h - 1 - y) * w
		dst := y * w * 4
		for x := 0; x < w; x++ {
			c := colors[srcRow+x]
			pixels[dst] = c.R
			pixels[dst+1] = c.G
			pixels[dst+2] = c.B
			pixels[dst+3] = c.A
			dst += 4
		}
	}
	return pixels
}
