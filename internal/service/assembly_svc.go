package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"sell_that_sheet/internal/model"
	"sell_that_sheet/internal/repository"
)

// LegacyValueID 关联行的历史遗留值ID，老系统迁移字段，统一填这个值
const LegacyValueID = 123

// ==================== 错误 ====================

// SetCreationIndex 表示失败发生在创建拍卖集阶段，不指向任何草稿
const SetCreationIndex = -1

// AssemblyError 装配失败：携带出错草稿的下标和第一个底层错误
// 前面草稿已落库的部分保留，不回滚；调用方决定整批重试还是人工对账
type AssemblyError struct {
	DraftIndex int
	Err        error
}

func (e *AssemblyError) Error() string {
	if e.DraftIndex == SetCreationIndex {
		return fmt.Sprintf("装配失败于创建拍卖集: %v", e.Err)
	}
	return fmt.Sprintf("装配失败于第 %d 条草稿: %v", e.DraftIndex, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// ==================== 目录路径 ====================

// FolderEntry 前端目录树的一级节点
type FolderEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DirectoryLocation 从目录树路径推导存储目录：去掉合成的 root 节点后拼接
func DirectoryLocation(path []FolderEntry) string {
	parts := make([]string, 0, len(path))
	for _, e := range path {
		if e.ID == "root" {
			continue
		}
		parts = append(parts, e.Name)
	}
	return strings.Join(parts, "/")
}

// ==================== AssemblyService ====================

// AssemblyService 装配管线：把一批草稿转成已落库的拍卖和拍卖集
type AssemblyService struct {
	auctions repository.AuctionRepository
	sets     repository.AuctionSetRepository
	params   repository.ParameterRepository
	links    repository.AuctionParameterRepository
	catalog  repository.CategoryParameterRepository
}

// NewAssemblyService 创建装配服务
func NewAssemblyService(
	auctions repository.AuctionRepository,
	sets repository.AuctionSetRepository,
	params repository.ParameterRepository,
	links repository.AuctionParameterRepository,
	catalog repository.CategoryParameterRepository,
) *AssemblyService {
	return &AssemblyService{
		auctions: auctions,
		sets:     sets,
		params:   params,
		links:    links,
		catalog:  catalog,
	}
}

// Assemble 按草稿顺序逐条装配，全部成功后创建拍卖集
//
// 单条草稿内严格串行：后续步骤都依赖第一步落库拿到的拍卖ID。
// 跨草稿无事务：第 k 条失败时 1..k-1 条已落库的拍卖保留。
// 任一持久化调用失败立即中止，包成 AssemblyError 上抛。
func (s *AssemblyService) Assemble(ctx context.Context, drafts []*DraftAuction, directory, setName string, ownerID *int64) (*model.AuctionSet, error) {
	auctionIDs := make([]int64, 0, len(drafts))

	for i, draft := range drafts {
		id, err := s.assembleOne(ctx, draft)
		if err != nil {
			return nil, &AssemblyError{DraftIndex: i, Err: err}
		}
		auctionIDs = append(auctionIDs, id)
	}

	set := &model.AuctionSet{
		Name:              setName,
		DirectoryLocation: directory,
		OwnerID:           ownerID,
		AuctionIDs:        auctionIDs,
		ShareToken:        uuid.NewString(),
		PushStatus:        model.PushStatusNone,
	}
	if err := s.sets.Create(ctx, set); err != nil {
		return nil, &AssemblyError{DraftIndex: SetCreationIndex, Err: fmt.Errorf("创建拍卖集: %w", err)}
	}
	return set, nil
}

// assembleOne 单条草稿的四步装配，返回新拍卖ID
func (s *AssemblyService) assembleOne(ctx context.Context, draft *DraftAuction) (int64, error) {
	// 第一步：落基础字段，拿拍卖ID
	auction := auctionFromDraft(draft)
	if err := s.auctions.Create(ctx, auction); err != nil {
		return 0, fmt.Errorf("创建拍卖: %w", err)
	}

	// 第二步：重取类目的自定义参数目录
	// 编辑期间类目可能改过，不能用解析 schema 时的缓存
	catalogParams, err := s.catalog.ListForCategory(ctx, draft.CategoryID)
	if err != nil {
		return 0, fmt.Errorf("获取参数目录: %w", err)
	}
	catalogByExtID := make(map[string]*model.CategoryParameter, len(catalogParams))
	for i := range catalogParams {
		catalogByExtID[catalogParams[i].ExternalID()] = &catalogParams[i]
	}

	// 第三步：按目录序逐个处理非空自定义值
	// 遍历序决定翻译表的构建序；目录外的键按字典序兜底，保证确定性
	translations := draftTranslations(draft)
	for _, extID := range customIterationOrder(draft.CustomValues, catalogParams) {
		value := draft.CustomValues[extID]
		if value.IsEmpty() {
			continue
		}

		entry := catalogByExtID[extID]

		// 注册表按外部ID惰性登记：目录里有的用目录名称/类型作种子，
		// 没有的最小化落行，未知外部ID从不拒绝
		var seedName, seedType string
		if model.IsCustomParam(extID) && entry != nil {
			seedName = entry.NamePL
			seedType = entry.ParameterType
		}
		param, err := s.params.GetOrCreate(ctx, extID, seedName, seedType)
		if err != nil {
			return 0, fmt.Errorf("登记参数 %s: %w", extID, err)
		}

		if entry != nil {
			setCustomTranslation(translations, entry, value)
		}

		link := &model.AuctionParameter{
			ParameterID: param.ID,
			AuctionID:   auction.ID,
			ValueName:   value.Serialize(),
			ValueID:     LegacyValueID,
		}
		if err := s.links.Create(ctx, link); err != nil {
			return 0, fmt.Errorf("关联参数 %s: %w", extID, err)
		}
	}

	// 第四步：终化写入翻译快照，状态翻到 finalized
	if err := s.auctions.Finalize(ctx, auction.ID, translations); err != nil {
		return 0, fmt.Errorf("终化拍卖 %d: %w", auction.ID, err)
	}
	return auction.ID, nil
}

// auctionFromDraft 草稿基础字段 → 数据库模型
func auctionFromDraft(draft *DraftAuction) *model.Auction {
	b := draft.BaseValues
	auction := &model.Auction{
		Name:          b["name"].AsString(),
		Tags:          b["tags"].AsString(),
		SerialNumbers: b["serial_numbers"].AsString(),
		Description:   b["description"].AsString(),
		Category:      draft.CategoryID,
		Status:        model.AuctionStatusCreated,
	}
	auction.PricePLN, _ = b["price_pln"].AsFloat()
	auction.PriceEuro, _ = b["price_euro"].AsFloat()
	auction.ShipmentPrice, _ = b["shipment_price"].AsFloat()
	if amount, ok := b["amount"].AsFloat(); ok {
		auction.Amount = amount
	} else {
		auction.Amount = 1
	}
	if draft.PhotosetID != nil {
		auction.PhotosetID = *draft.PhotosetID
	}
	return auction
}

// draftTranslations 草稿既有翻译的深拷贝，保证 "de"→"custom" 两层map就位
// 必须深拷：翻译写入不能改到草稿仓发出的快照，失败重试要拿原始草稿
func draftTranslations(draft *DraftAuction) model.JSONMap {
	translations := make(model.JSONMap, len(draft.Translations)+1)
	for k, v := range draft.Translations {
		translations[k] = deepCopyValue(v)
	}
	de, ok := translations["de"].(map[string]interface{})
	if !ok {
		de = make(map[string]interface{})
		translations["de"] = de
	}
	if _, ok := de["custom"].(map[string]interface{}); !ok {
		de["custom"] = make(map[string]interface{})
	}
	return translations
}

// deepCopyValue 递归拷贝翻译表里的嵌套 map 和列表
func deepCopyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case model.JSONMap:
		return deepCopyValue(map[string]interface{}(t))
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = deepCopyValue(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}

// customIterationOrder 自定义值的遍历序：先按目录序，目录外的键按字典序补尾
func customIterationOrder(values map[string]FieldValue, catalogParams []model.CategoryParameter) []string {
	order := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for i := range catalogParams {
		extID := catalogParams[i].ExternalID()
		if _, ok := values[extID]; ok {
			order = append(order, extID)
			seen[extID] = true
		}
	}

	rest := make([]string, 0, len(values))
	for extID := range values {
		if !seen[extID] {
			rest = append(rest, extID)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// TranslateParamValue 按下标配对做 pl→de 值替换
// 标量和列表元素都替换；源列表里找不到的值原样放行
func TranslateParamValue(value FieldValue, entry *model.CategoryParameter) FieldValue {
	translate := func(v string) string {
		for i, pl := range entry.PossibleValuesPL {
			if pl == v && i < len(entry.PossibleValuesDE) {
				return entry.PossibleValuesDE[i]
			}
		}
		return v
	}

	switch value.Kind {
	case ValueStrList:
		out := make([]string, len(value.List))
		for i, v := range value.List {
			out[i] = translate(v)
		}
		return StrList(out...)
	case ValueStr:
		return Str(translate(value.Str))
	default:
		return value
	}
}

// setCustomTranslation 把翻译结果写进 translations["de"]["custom"][德语名]
func setCustomTranslation(translations model.JSONMap, entry *model.CategoryParameter, value FieldValue) {
	translated := TranslateParamValue(value, entry)

	de := translations["de"].(map[string]interface{})
	custom := de["custom"].(map[string]interface{})
	if translated.Kind == ValueStrList {
		custom[entry.NameDE] = translated.List
	} else {
		custom[entry.NameDE] = translated.AsString()
	}
}
