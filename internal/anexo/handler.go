package anexo

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// TamanhoMaximo limita cada comprovante a 10 MB.
const TamanhoMaximo = 10 << 20

var tiposPermitidos = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

type Handler struct {
	Armazenador Armazenador
	Log         *zap.Logger
}

func NewHandler(a Armazenador, log *zap.Logger) *Handler {
	return &Handler{Armazenador: a, Log: log}
}

// POST /anexos (multipart, campo "file")
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, TamanhoMaximo+1<<20)
	if err := r.ParseMultipartForm(TamanhoMaximo); err != nil {
		http.Error(w, "Formulário multipart inválido", http.StatusBadRequest)
		return
	}
	f, fh, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Arquivo é obrigatório", http.StatusBadRequest)
		return
	}
	defer f.Close()

	if fh.Size > TamanhoMaximo {
		http.Error(w, "Arquivo maior que 10 MB", http.StatusRequestEntityTooLarge)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !tiposPermitidos[contentType] {
		http.Error(w, "Tipo de arquivo não permitido", http.StatusUnsupportedMediaType)
		return
	}

	chave := Chave(fh.Filename)
	url, err := h.Armazenador.Enviar(r.Context(), chave, f, fh.Size, contentType)
	if err != nil {
		h.Log.Error("falha ao enviar anexo", zap.String("chave", chave), zap.Error(err))
		http.Error(w, "Erro ao armazenar arquivo", http.StatusInternalServerError)
		return
	}
	h.Log.Info("anexo enviado", zap.String("chave", chave), zap.Int64("tamanho", fh.Size))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
}
