package service

import (
	"context"
	"errors"
	"testing"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// ==================== Mock 实现 ====================

// countingParameterRepo 包装真实仓储，统计登记了多少新行
type countingParameterRepo struct {
	inner   repository.ParameterRepository
	creates int
}

func (m *countingParameterRepo) FindByAllegroID(ctx context.Context, allegroID string) (*model.Parameter, error) {
	return m.inner.FindByAllegroID(ctx, allegroID)
}

func (m *countingParameterRepo) GetOrCreate(ctx context.Context, allegroID, name, paramType string) (*model.Parameter, error) {
	existing, err := m.inner.FindByAllegroID(ctx, allegroID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		m.creates++
	}
	return m.inner.GetOrCreate(ctx, allegroID, name, paramType)
}

func (m *countingParameterRepo) List(ctx context.Context) ([]model.Parameter, error) {
	return m.inner.List(ctx)
}

// failingAuctionRepo 第 failAt 次 Create 返回错误，其余委托真实仓储
type failingAuctionRepo struct {
	repository.AuctionRepository
	calls  int
	failAt int
}

func (m *failingAuctionRepo) Create(ctx context.Context, auction *model.Auction) error {
	m.calls++
	if m.calls == m.failAt {
		return errors.New("connection reset")
	}
	return m.AuctionRepository.Create(ctx, auction)
}

// failingSetRepo 创建拍卖集必失败，其余委托真实仓储
type failingSetRepo struct {
	repository.AuctionSetRepository
}

func (m *failingSetRepo) Create(ctx context.Context, set *model.AuctionSet) error {
	return errors.New("connection reset")
}

// ==================== 测试辅助函数 ====================

type assemblyFixture struct {
	svc        *AssemblyService
	auctions   repository.AuctionRepository
	sets       repository.AuctionSetRepository
	params     *countingParameterRepo
	links      repository.AuctionParameterRepository
	catalog    repository.CategoryParameterRepository
	categoryID int64
	colorExtID string
}

// newAssemblyFixture 类目 C：自定义多选参数 Kolor（PL/DE 可选值按下标配对）
func newAssemblyFixture(t *testing.T) *assemblyFixture {
	db := setupServiceTestDB(t)
	categoryID := int64(5)

	color := seedCatalogParam(t, db, &model.CategoryParameter{
		CategoryID: &categoryID, NamePL: "Kolor", NameDE: "Farbe",
		ParameterType:    "multi",
		PossibleValuesPL: []string{"czerwony", "niebieski"},
		PossibleValuesDE: []string{"rot", "blau"},
	})

	params := &countingParameterRepo{inner: repository.NewParameterRepository(db)}
	f := &assemblyFixture{
		auctions:   repository.NewAuctionRepository(db),
		sets:       repository.NewAuctionSetRepository(db),
		params:     params,
		links:      repository.NewAuctionParameterRepository(db),
		catalog:    repository.NewCategoryParameterRepository(db),
		categoryID: categoryID,
		colorExtID: color.ExternalID(),
	}
	f.svc = NewAssemblyService(f.auctions, f.sets, params, f.links, f.catalog)
	return f
}

func (f *assemblyFixture) draft(name string, colors ...string) *DraftAuction {
	return &DraftAuction{
		CategoryID: f.categoryID,
		BaseValues: map[string]FieldValue{
			"name":           Str(name),
			"price_pln":      Num(100),
			"shipment_price": Num(15),
		},
		CustomValues: map[string]FieldValue{
			f.colorExtID: StrList(colors...),
		},
	}
}

// ==================== Assemble 测试 ====================

func TestAssemblyService_EndToEnd(t *testing.T) {
	f := newAssemblyFixture(t)
	ctx := context.Background()

	// 草稿 A 有颜色值，草稿 B 值为空
	drafts := []*DraftAuction{
		f.draft("Lampa", "niebieski"),
		f.draft("Stol"),
	}

	set, err := f.svc.Assemble(ctx, drafts, "meble/salon", "partia-1", nil)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	// 两条拍卖，入库顺序与草稿一致
	if len(set.AuctionIDs) != 2 {
		t.Fatalf("拍卖数 = %d, want 2", len(set.AuctionIDs))
	}
	auctions, err := f.auctions.ListByIDs(ctx, set.AuctionIDs)
	if err != nil {
		t.Fatalf("查拍卖失败: %v", err)
	}
	if auctions[0].Name != "Lampa" || auctions[1].Name != "Stol" {
		t.Errorf("拍卖顺序 = [%s, %s], want [Lampa, Stol]", auctions[0].Name, auctions[1].Name)
	}

	// 两条都终化
	for _, a := range auctions {
		if a.Status != model.AuctionStatusFinalized {
			t.Errorf("拍卖 %d 状态 = %s, want finalized", a.ID, a.Status)
		}
	}

	// 只有草稿 A 产生关联行（空值跳过），值按分隔符序列化
	linksA, _ := f.links.ListByAuctionID(ctx, auctions[0].ID)
	if len(linksA) != 1 {
		t.Fatalf("Lampa 关联数 = %d, want 1", len(linksA))
	}
	if linksA[0].ValueName != "niebieski" {
		t.Errorf("关联值 = %q, want niebieski", linksA[0].ValueName)
	}
	if linksA[0].ValueID != LegacyValueID {
		t.Errorf("ValueID = %d, want %d", linksA[0].ValueID, LegacyValueID)
	}
	countB, _ := f.links.CountByAuctionID(ctx, auctions[1].ID)
	if countB != 0 {
		t.Errorf("Stol 关联数 = %d, want 0", countB)
	}

	// 草稿 A 的德语翻译按下标配对：niebieski → blau
	de, ok := auctions[0].TranslatedParams["de"].(map[string]interface{})
	if !ok {
		t.Fatalf("翻译快照缺 de 层: %+v", auctions[0].TranslatedParams)
	}
	custom, ok := de["custom"].(map[string]interface{})
	if !ok {
		t.Fatalf("翻译快照缺 custom 层: %+v", de)
	}
	farbe, ok := custom["Farbe"].([]interface{})
	if !ok || len(farbe) != 1 || farbe[0] != "blau" {
		t.Errorf("Farbe = %v, want [blau]", custom["Farbe"])
	}

	// 拍卖集字段
	if set.Name != "partia-1" || set.DirectoryLocation != "meble/salon" {
		t.Errorf("拍卖集 = %s/%s", set.Name, set.DirectoryLocation)
	}
	if set.ShareToken == "" {
		t.Error("分享令牌应生成")
	}
}

func TestAssemblyService_AutoVivification(t *testing.T) {
	f := newAssemblyFixture(t)
	ctx := context.Background()

	// 第一次装配：未登记的外部ID恰好登记一次
	if _, err := f.svc.Assemble(ctx, []*DraftAuction{f.draft("Lampa", "czerwony")}, "d", "s1", nil); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if f.params.creates != 1 {
		t.Errorf("登记次数 = %d, want 1", f.params.creates)
	}

	// 目录项种子写进注册表
	param, err := f.params.FindByAllegroID(ctx, f.colorExtID)
	if err != nil || param == nil {
		t.Fatalf("注册表缺 %s: %v", f.colorExtID, err)
	}
	if param.Name != "Kolor" || param.Type != "multi" {
		t.Errorf("种子 = %s/%s, want Kolor/multi", param.Name, param.Type)
	}

	// 第二次装配：行已存在，零次登记
	f.params.creates = 0
	if _, err := f.svc.Assemble(ctx, []*DraftAuction{f.draft("Stol", "czerwony")}, "d", "s2", nil); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if f.params.creates != 0 {
		t.Errorf("第二次登记次数 = %d, want 0", f.params.creates)
	}
}

func TestAssemblyService_UnknownExternalID(t *testing.T) {
	f := newAssemblyFixture(t)
	ctx := context.Background()

	// 目录外的外部ID不拒绝，最小化落行（空名称/类型）
	draft := f.draft("Lampa")
	draft.CustomValues["224017"] = Str("Philips")

	if _, err := f.svc.Assemble(ctx, []*DraftAuction{draft}, "d", "s", nil); err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	param, err := f.params.FindByAllegroID(ctx, "224017")
	if err != nil || param == nil {
		t.Fatalf("未知外部ID应落行: %v", err)
	}
	if param.Name != "" || param.Type != "" {
		t.Errorf("未知外部ID种子应为空, got %s/%s", param.Name, param.Type)
	}
}

func TestAssemblyService_PartialFailure(t *testing.T) {
	f := newAssemblyFixture(t)
	ctx := context.Background()

	// 第二条草稿的创建失败
	failing := &failingAuctionRepo{AuctionRepository: f.auctions, failAt: 2}
	svc := NewAssemblyService(failing, f.sets, f.params, f.links, f.catalog)

	_, err := svc.Assemble(ctx, []*DraftAuction{
		f.draft("Lampa", "niebieski"),
		f.draft("Stol", "czerwony"),
	}, "d", "s", nil)
	if err == nil {
		t.Fatal("应失败")
	}

	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("错误类型 = %T, want *AssemblyError", err)
	}
	if asmErr.DraftIndex != 1 {
		t.Errorf("DraftIndex = %d, want 1", asmErr.DraftIndex)
	}

	// 第一条草稿的拍卖和关联行保留（不回滚）
	auctions, _ := f.auctions.ListByIDs(ctx, []int64{1})
	if len(auctions) != 1 || auctions[0].Name != "Lampa" {
		t.Error("第一条拍卖应保留")
	}
	count, _ := f.links.CountByAuctionID(ctx, auctions[0].ID)
	if count != 1 {
		t.Errorf("第一条拍卖的关联数 = %d, want 1", count)
	}

	// 不创建拍卖集
	sets, _ := f.sets.List(ctx)
	if len(sets) != 0 {
		t.Errorf("拍卖集数 = %d, want 0", len(sets))
	}
}

func TestAssemblyService_SetCreationFailure(t *testing.T) {
	f := newAssemblyFixture(t)
	ctx := context.Background()

	// 草稿全部装配成功，创建拍卖集这一步失败
	svc := NewAssemblyService(f.auctions, &failingSetRepo{AuctionSetRepository: f.sets}, f.params, f.links, f.catalog)

	_, err := svc.Assemble(ctx, []*DraftAuction{f.draft("Lampa", "niebieski")}, "d", "s", nil)
	if err == nil {
		t.Fatal("应失败")
	}

	var asmErr *AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("错误类型 = %T, want *AssemblyError", err)
	}
	// 下标不能指向任何草稿，调用方靠哨兵值区分失败阶段
	if asmErr.DraftIndex != SetCreationIndex {
		t.Errorf("DraftIndex = %d, want %d", asmErr.DraftIndex, SetCreationIndex)
	}
}

func TestAssemblyService_DraftTranslationsNotMutated(t *testing.T) {
	f := newAssemblyFixture(t)
	ctx := context.Background()

	// 草稿自带 de 层翻译：装配写入翻译快照不能改到草稿本身
	draft := f.draft("Lampa", "niebieski")
	draft.Translations = model.JSONMap{
		"de": map[string]interface{}{"title": "Lampe"},
	}

	set, err := f.svc.Assemble(ctx, []*DraftAuction{draft}, "d", "s", nil)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	de := draft.Translations["de"].(map[string]interface{})
	if _, ok := de["custom"]; ok {
		t.Error("草稿翻译表被装配写入污染")
	}
	if de["title"] != "Lampe" {
		t.Errorf("草稿既有翻译被改: %v", de["title"])
	}

	// 快照里既有既存键也有新写入的 custom 层
	auctions, _ := f.auctions.ListByIDs(ctx, set.AuctionIDs)
	snapDe := auctions[0].TranslatedParams["de"].(map[string]interface{})
	if snapDe["title"] != "Lampe" {
		t.Errorf("快照缺既有翻译: %v", snapDe["title"])
	}
	if _, ok := snapDe["custom"].(map[string]interface{}); !ok {
		t.Errorf("快照缺 custom 层: %v", snapDe)
	}
}

// ==================== 翻译替换测试 ====================

func TestTranslateParamValue(t *testing.T) {
	entry := &model.CategoryParameter{
		PossibleValuesPL: []string{"czerwony", "niebieski"},
		PossibleValuesDE: []string{"rot", "blau"},
	}

	// 下标配对替换
	if got := TranslateParamValue(Str("niebieski"), entry); got.AsString() != "blau" {
		t.Errorf("niebieski → %q, want blau", got.AsString())
	}
	if got := TranslateParamValue(Str("czerwony"), entry); got.AsString() != "rot" {
		t.Errorf("czerwony → %q, want rot", got.AsString())
	}

	// 列表逐元素替换
	got := TranslateParamValue(StrList("czerwony", "zielony"), entry)
	if len(got.List) != 2 || got.List[0] != "rot" || got.List[1] != "zielony" {
		t.Errorf("列表翻译 = %v, want [rot zielony]", got.List)
	}

	// 源列表没有的值原样放行
	if got := TranslateParamValue(Str("fioletowy"), entry); got.AsString() != "fioletowy" {
		t.Errorf("未命中值应放行, got %q", got.AsString())
	}

	// 德语列表短于波兰语列表时越界下标放行
	short := &model.CategoryParameter{
		PossibleValuesPL: []string{"czerwony", "niebieski"},
		PossibleValuesDE: []string{"rot"},
	}
	if got := TranslateParamValue(Str("niebieski"), short); got.AsString() != "niebieski" {
		t.Errorf("越界下标应放行, got %q", got.AsString())
	}
}

// ==================== 目录路径测试 ====================

func TestDirectoryLocation(t *testing.T) {
	path := []FolderEntry{
		{ID: "root", Name: "Root"},
		{ID: "12", Name: "meble"},
		{ID: "17", Name: "salon"},
	}
	if got := DirectoryLocation(path); got != "meble/salon" {
		t.Errorf("DirectoryLocation = %q, want meble/salon", got)
	}

	if got := DirectoryLocation([]FolderEntry{{ID: "root", Name: "Root"}}); got != "" {
		t.Errorf("只有根节点应为空, got %q", got)
	}
}
