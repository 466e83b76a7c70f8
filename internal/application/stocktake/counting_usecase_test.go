package stocktake_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/domain"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
	domstock "github.com/tojem/stock-taker-api/internal/domain/stocktake"
)

// fakeScanner implementa el puerto Scanner: guarda el handler armado y cuenta
// starts/stops para verificar la semántica de recurso único.
type fakeScanner struct {
	handler  stocktake.DecodeHandler
	starts   int
	stops    int
	startErr error
}

func (s *fakeScanner) Start(onDecoded stocktake.DecodeHandler) error {
	if s.startErr != nil {
		return s.startErr
	}
	if s.handler != nil {
		// Recurso único: armar de nuevo supersede al escaneo anterior.
		s.stops++
	}
	s.handler = onDecoded
	s.starts++
	return nil
}

func (s *fakeScanner) Stop() {
	if s.handler != nil {
		s.stops++
	}
	s.handler = nil
}

// decode simula al dispositivo entregando un código decodificado.
func (s *fakeScanner) decode(code string) (stocktake.ScanResult, error) {
	h := s.handler
	if h == nil {
		return stocktake.ScanResult{}, domain.ErrNoActiveScan
	}
	return h(code)
}

func itemsDeConteo() *fakeItemRepo {
	return &fakeItemRepo{items: []entity.InventoryItem{
		{ID: "CMP-001", Category: entity.CategoryComponents, Name: "Tornillo M6",
			CurrentStock: 100, StockTakeMethod: entity.MethodCount},
		{ID: "RAW-001", Category: entity.CategoryRawMaterials, Name: "Resina",
			CurrentStock: 10, StockTakeMethod: entity.MethodWeight,
			TareWeight: decimal.NewFromInt(50), UnitWeight: decimal.NewFromInt(10)},
	}}
}

func buildCountingUC(items *fakeItemRepo, sc *fakeScanner) *stocktake.CountingUseCase {
	return stocktake.NewCountingUseCase(items, sc, testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección
// ──────────────────────────────────────────────────────────────────────────────

func TestSelect_ItemExistente_QuedaUnverified(t *testing.T) {
	uc := buildCountingUC(itemsDeConteo(), &fakeScanner{})

	it, err := uc.Select("CMP-001")
	require.NoError(t, err)
	assert.Equal(t, "Tornillo M6", it.Name)

	state, current := uc.Current()
	assert.Equal(t, stocktake.FlowUnverified, state)
	assert.Equal(t, "CMP-001", current.ID)
}

func TestSelect_ItemInexistente_ErrNotFound(t *testing.T) {
	uc := buildCountingUC(itemsDeConteo(), &fakeScanner{})
	_, err := uc.Select("NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compuerta de verificación por escaneo
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyScan_CodigoCorrecto_TransicionaAVerified(t *testing.T) {
	sc := &fakeScanner{}
	uc := buildCountingUC(itemsDeConteo(), sc)
	_, err := uc.Select("CMP-001")
	require.NoError(t, err)
	require.NoError(t, uc.RequestVerifyScan())

	res, err := sc.decode("CMP-001")
	require.NoError(t, err)
	assert.Equal(t, stocktake.OutcomeVerified, res.Outcome)

	state, _ := uc.Current()
	assert.Equal(t, stocktake.FlowVerified, state)
	assert.Nil(t, sc.handler, "el escáner debe quedar detenido tras consumir el contexto")
}

func TestVerifyScan_CodigoIncorrecto_SigueUnverified(t *testing.T) {
	sc := &fakeScanner{}
	uc := buildCountingUC(itemsDeConteo(), sc)
	_, _ = uc.Select("CMP-001")
	require.NoError(t, uc.RequestVerifyScan())

	res, err := sc.decode("RAW-001")
	require.NoError(t, err, "un mismatch es un aviso al operario, no un error")
	assert.Equal(t, stocktake.OutcomeMismatch, res.Outcome)

	state, _ := uc.Current()
	assert.Equal(t, stocktake.FlowUnverified, state, "mismatch no cambia el estado")
	assert.Nil(t, sc.handler, "el escáner se detiene igual: el contexto es de un solo uso")
}

func TestVerifyScan_SinSeleccion_ErrNoSelection(t *testing.T) {
	uc := buildCountingUC(itemsDeConteo(), &fakeScanner{})
	assert.ErrorIs(t, uc.RequestVerifyScan(), domain.ErrNoSelection)
}

func TestVerifyScan_YaVerificado_ErrConflict(t *testing.T) {
	sc := &fakeScanner{}
	uc := buildCountingUC(itemsDeConteo(), sc)
	_, _ = uc.Select("CMP-001")
	require.NoError(t, uc.RequestVerifyScan())
	_, _ = sc.decode("CMP-001")

	assert.ErrorIs(t, uc.RequestVerifyScan(), domain.ErrConflict)
}

func TestVerifyScan_FalloAlArmarEscaner_DescartaContexto(t *testing.T) {
	sc := &fakeScanner{startErr: errors.New("cámara ocupada")}
	uc := buildCountingUC(itemsDeConteo(), sc)
	_, _ = uc.Select("CMP-001")

	assert.ErrorIs(t, uc.RequestVerifyScan(), domain.ErrScannerUnavailable)
	assert.Nil(t, sc.handler)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escaneo general (selección por QR)
// ──────────────────────────────────────────────────────────────────────────────

func TestGeneralScan_ItemEncontrado_QuedaSeleccionado(t *testing.T) {
	sc := &fakeScanner{}
	uc := buildCountingUC(itemsDeConteo(), sc)
	require.NoError(t, uc.RequestGeneralScan())

	res, err := sc.decode("RAW-001")
	require.NoError(t, err)
	assert.Equal(t, stocktake.OutcomeSelected, res.Outcome)
	assert.Equal(t, "RAW-001", res.Item.ID)

	state, current := uc.Current()
	assert.Equal(t, stocktake.FlowUnverified, state)
	assert.Equal(t, "RAW-001", current.ID)
}

func TestGeneralScan_ItemInexistente_ErrNotFoundYSeleccionIntacta(t *testing.T) {
	sc := &fakeScanner{}
	uc := buildCountingUC(itemsDeConteo(), sc)
	require.NoError(t, uc.RequestGeneralScan())

	_, err := sc.decode("NO-EXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	state, _ := uc.Current()
	assert.Equal(t, stocktake.FlowIdle, state, "sin selección previa sigue sin haber selección")
}

func TestScan_SinContextoArmado_ErrNoActiveScan(t *testing.T) {
	sc := &fakeScanner{}
	uc := buildCountingUC(itemsDeConteo(), sc)
	require.NoError(t, uc.RequestGeneralScan())
	_, _ = sc.decode("CMP-001")

	// El contexto ya fue consumido; un segundo código no tiene escaneo activo.
	_, err := sc.decode("CMP-001")
	assert.ErrorIs(t, err, domain.ErrNoActiveScan)
}

// ──────────────────────────────────────────────────────────────────────────────
// Commit
// ──────────────────────────────────────────────────────────────────────────────

func verificar(t *testing.T, uc *stocktake.CountingUseCase, sc *fakeScanner, itemID string) {
	t.Helper()
	_, err := uc.Select(itemID)
	require.NoError(t, err)
	require.NoError(t, uc.RequestVerifyScan())
	res, err := sc.decode(itemID)
	require.NoError(t, err)
	require.Equal(t, stocktake.OutcomeVerified, res.Outcome)
}

func TestCommit_ConteoManual_PersisteYCierraElFlujo(t *testing.T) {
	items := itemsDeConteo()
	sc := &fakeScanner{}
	uc := buildCountingUC(items, sc)
	verificar(t, uc, sc, "CMP-001")

	committed, err := uc.Commit("ses-001", "232")
	require.NoError(t, err)
	assert.Equal(t, 232, committed.CurrentStock)
	require.NotNil(t, committed.LastCountedInSessionID)
	assert.Equal(t, "ses-001", *committed.LastCountedInSessionID)

	// Persistido en el store con el marcador de sesión.
	stored, _ := items.FindByID("CMP-001")
	assert.Equal(t, 232, stored.CurrentStock)
	require.NotNil(t, stored.LastCountedInSessionID)
	assert.Equal(t, "ses-001", *stored.LastCountedInSessionID)

	// El ítem aparece en completados en el próximo recompute del checklist.
	all, _ := items.ListAll()
	cl := domstock.Build(all, "ses-001", "")
	require.Len(t, cl.Completed, 1)
	assert.Equal(t, "CMP-001", cl.Completed[0].ID)

	state, _ := uc.Current()
	assert.Equal(t, stocktake.FlowIdle, state, "el commit cierra el flujo")
}

func TestCommit_PorPeso_DerivaCantidad(t *testing.T) {
	items := itemsDeConteo()
	sc := &fakeScanner{}
	uc := buildCountingUC(items, sc)
	verificar(t, uc, sc, "RAW-001")

	committed, err := uc.Commit("ses-001", "550")
	require.NoError(t, err)
	assert.Equal(t, 50, committed.CurrentStock, "(550-50)/10 = 50 unidades")
}

func TestCommit_SinVerificar_ErrNotVerified(t *testing.T) {
	uc := buildCountingUC(itemsDeConteo(), &fakeScanner{})
	_, _ = uc.Select("CMP-001")

	_, err := uc.Commit("ses-001", "232")
	assert.ErrorIs(t, err, domain.ErrNotVerified,
		"sin verificación la única acción permitida es pedir el escaneo")
}

func TestCommit_EntradaInvalida_PermaneceVerified(t *testing.T) {
	items := itemsDeConteo()
	sc := &fakeScanner{}
	uc := buildCountingUC(items, sc)
	verificar(t, uc, sc, "RAW-001")

	// Peso menor que la tara: inválido, sin mutación, reintento permitido.
	_, err := uc.Commit("ses-001", "40")
	assert.ErrorIs(t, err, domain.ErrValidation)

	state, _ := uc.Current()
	assert.Equal(t, stocktake.FlowVerified, state)
	stored, _ := items.FindByID("RAW-001")
	assert.Equal(t, 10, stored.CurrentStock, "el stock no debe cambiar")

	// Reintento con un valor válido funciona sin re-verificar.
	committed, err := uc.Commit("ses-001", "550")
	require.NoError(t, err)
	assert.Equal(t, 50, committed.CurrentStock)
}

func TestCommit_FalloDelStore_PermaneceVerifiedSinMutacion(t *testing.T) {
	items := itemsDeConteo()
	items.updateErr = errors.New("store caído")
	sc := &fakeScanner{}
	uc := buildCountingUC(items, sc)
	verificar(t, uc, sc, "CMP-001")

	_, err := uc.Commit("ses-001", "232")
	require.Error(t, err)

	state, _ := uc.Current()
	assert.Equal(t, stocktake.FlowVerified, state, "fallo de persistencia permite reintento")
	stored, _ := items.FindByID("CMP-001")
	assert.Nil(t, stored.LastCountedInSessionID, "un commit fallido nunca marca el ítem como contado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_DescartaSeleccionYDetieneEscaner(t *testing.T) {
	sc := &fakeScanner{}
	uc := buildCountingUC(itemsDeConteo(), sc)
	_, _ = uc.Select("CMP-001")
	require.NoError(t, uc.RequestVerifyScan())

	uc.Close()

	state, current := uc.Current()
	assert.Equal(t, stocktake.FlowIdle, state)
	assert.Nil(t, current)
	assert.Nil(t, sc.handler, "cerrar el flujo libera la cámara")

	// Stop repetido es idempotente.
	uc.Close()
}
