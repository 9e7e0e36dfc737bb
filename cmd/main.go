package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/distribuidora/api-financeiro/internal/anexo"
	"github.com/distribuidora/api-financeiro/internal/auditoria"
	"github.com/distribuidora/api-financeiro/internal/auth"
	"github.com/distribuidora/api-financeiro/internal/bordero"
	"github.com/distribuidora/api-financeiro/internal/comissao"
	"github.com/distribuidora/api-financeiro/internal/config"
	"github.com/distribuidora/api-financeiro/internal/credito"
	"github.com/distribuidora/api-financeiro/internal/deposito"
	"github.com/distribuidora/api-financeiro/internal/liquidacao"
	"github.com/distribuidora/api-financeiro/internal/logger"
	"github.com/distribuidora/api-financeiro/internal/notificacao"
	"github.com/distribuidora/api-financeiro/internal/pedido"
	"github.com/distribuidora/api-financeiro/internal/utils/db"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// intervalo das rotinas de varredura de resíduos e sincronização de comissões
const intervaloRotinas = time.Hour

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectDataBase(ctx, cfg.DB)
	if err != nil {
		log.Fatal("Erro ao conectar no banco", zap.Error(err))
	}
	if err := db.Migrate(ctx, database); err != nil {
		log.Fatal("Erro no AutoMigrate", zap.Error(err))
	}

	if err := auth.Init(cfg.Auth); err != nil {
		log.Fatal("Erro ao carregar chave de autenticação", zap.Error(err))
	}

	var aud auditoria.Registrador = auditoria.Nop{}
	if cfg.Mongo.URI != "" {
		m, err := auditoria.Conectar(ctx, cfg.Mongo)
		if err != nil {
			log.Fatal("Erro ao conectar no MongoDB", zap.Error(err))
		}
		defer func() { _ = m.Close(context.Background()) }()
		aud = m
	} else {
		log.Warn("MONGO_URI vazio, auditoria desativada")
	}

	armazenamento, err := anexo.Conectar(cfg.S3)
	if err != nil {
		log.Fatal("Erro ao configurar armazenamento de anexos", zap.Error(err))
	}
	if err := armazenamento.GarantirBucket(ctx); err != nil {
		log.Warn("bucket de anexos indisponível", zap.String("bucket", cfg.S3.Bucket), zap.Error(err))
	}

	validate := validator.New()

	// Repositórios e serviços
	pedidoRepo := pedido.NewRepository(database)
	liquidacaoSvc := liquidacao.NewService(
		liquidacao.NewGormStore(database),
		validate,
		aud,
		notificacao.NewWebhook(cfg.Webhook, log),
		log,
	)
	comissaoSvc := comissao.NewService(comissao.NewRepository(database), aud, log)

	// Handlers
	pedidoHandler := pedido.NewHandler(pedidoRepo, validate, log)
	creditoHandler := credito.NewHandler(credito.NewRepository(database), pedidoRepo, log)
	depositoHandler := deposito.NewHandler(deposito.NewRepository(database), pedidoRepo, validate, log)
	borderoHandler := bordero.NewHandler(bordero.NewRepository(database), pedidoRepo)
	liquidacaoHandler := liquidacao.NewHandler(liquidacaoSvc, log)
	comissaoHandler := comissao.NewHandler(comissaoSvc, log)
	anexoHandler := anexo.NewHandler(armazenamento, log)

	admin := func(h http.HandlerFunc) http.Handler { return auth.RequireAdmin(h) }

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de pedidos
	api.Handle("/pedidos", admin(pedidoHandler.Criar)).Methods("POST")
	api.HandleFunc("/pedidos", pedidoHandler.Listar).Methods("GET")
	api.Handle("/pedidos/varrer-residuais", admin(pedidoHandler.VarrerResiduais)).Methods("POST")
	api.HandleFunc("/pedidos/{id}", pedidoHandler.Buscar).Methods("GET")
	api.Handle("/pedidos/{id}", admin(pedidoHandler.Atualizar)).Methods("PUT")

	// Rotas de créditos e depósitos
	api.HandleFunc("/clientes/{codigo}/creditos", creditoHandler.ListarPorCliente).Methods("GET")
	api.HandleFunc("/clientes/{codigo}/depositos", depositoHandler.ListarPorCliente).Methods("GET")
	api.Handle("/depositos", admin(depositoHandler.Criar)).Methods("POST")

	// Rotas de liquidação
	api.HandleFunc("/liquidacoes/previa", liquidacaoHandler.Previa).Methods("POST")
	api.Handle("/liquidacoes", admin(liquidacaoHandler.Liquidar)).Methods("POST")
	api.HandleFunc("/liquidacoes/solicitacoes", liquidacaoHandler.Solicitar).Methods("POST")
	api.HandleFunc("/liquidacoes/solicitacoes", liquidacaoHandler.ListarSolicitacoes).Methods("GET")
	api.Handle("/liquidacoes/solicitacoes/{id}/aprovar", admin(liquidacaoHandler.Aprovar)).Methods("POST")
	api.Handle("/liquidacoes/solicitacoes/{id}/rejeitar", admin(liquidacaoHandler.Rejeitar)).Methods("POST")
	api.HandleFunc("/borderos/{numero}", borderoHandler.Buscar).Methods("GET")
	api.HandleFunc("/anexos", anexoHandler.Upload).Methods("POST")

	// Rotas de comissão
	api.Handle("/comissoes/sincronizar", admin(comissaoHandler.Sincronizar)).Methods("POST")
	api.HandleFunc("/comissoes", comissaoHandler.Listar).Methods("GET")
	api.HandleFunc("/comissoes/total", comissaoHandler.Total).Methods("GET")
	api.Handle("/comissoes/{id:[0-9]+}/antecipar", admin(comissaoHandler.Antecipar)).Methods("POST")
	api.Handle("/comissoes/{id:[0-9]+}/adiar", admin(comissaoHandler.Adiar)).Methods("POST")
	api.Handle("/comissoes/fechamentos", admin(comissaoHandler.FecharMes)).Methods("POST")
	api.Handle("/comissoes/fechamentos/lote", admin(comissaoHandler.FecharLote)).Methods("POST")
	api.HandleFunc("/comissoes/fechamentos/{representante}/{mes}", comissaoHandler.Fechamento).Methods("GET")
	api.Handle("/comissoes/fechamentos/{representante}/{mes}/recalcular", admin(comissaoHandler.Recalcular)).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: true,
	})

	go rotinas(ctx, pedidoRepo, comissaoSvc, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Servidor rodando", zap.String("porta", cfg.Port), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Erro no servidor HTTP", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("encerrando servidor")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Erro ao encerrar servidor", zap.Error(err))
	}
}

// rotinas varre saldos residuais e cria lançamentos de comissão pendentes.
func rotinas(ctx context.Context, pedidos *pedido.Repository, comissoes *comissao.Service, log *zap.Logger) {
	t := time.NewTicker(intervaloRotinas)
	defer t.Stop()
	for {
		if _, err := pedido.VarrerResiduais(ctx, pedidos, time.Now(), log); err != nil && ctx.Err() == nil {
			log.Error("falha na varredura de resíduos", zap.Error(err))
		}
		if _, err := comissoes.Sincronizar(ctx); err != nil && ctx.Err() == nil {
			log.Error("falha ao sincronizar comissões", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
