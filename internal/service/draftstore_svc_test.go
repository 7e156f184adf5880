package service

import (
	"testing"
)

func newDraft(categoryID int64, name string) *DraftAuction {
	return &DraftAuction{
		CategoryID: categoryID,
		BaseValues: map[string]FieldValue{
			"name": Str(name),
		},
		CustomValues: map[string]FieldValue{},
	}
}

func TestDraftStore_AddAndList(t *testing.T) {
	store := NewDraftStore()

	a := store.Add(newDraft(5, "Lampa"))
	b := store.Add(newDraft(5, "Stol"))
	c := store.Add(newDraft(9, "Krzeslo"))

	if a.LocalID != 1 || b.LocalID != 2 || c.LocalID != 3 {
		t.Errorf("LocalID 分配 = %d/%d/%d, want 1/2/3", a.LocalID, b.LocalID, c.LocalID)
	}

	// 全量按入仓顺序
	all := store.List(-1)
	if len(all) != 3 {
		t.Fatalf("草稿数 = %d, want 3", len(all))
	}
	if all[0].BaseValues["name"].AsString() != "Lampa" || all[2].BaseValues["name"].AsString() != "Krzeslo" {
		t.Error("列表顺序不对")
	}

	// 按类目过滤
	cat5 := store.List(5)
	if len(cat5) != 2 {
		t.Errorf("类目 5 草稿数 = %d, want 2", len(cat5))
	}
}

func TestDraftStore_AddCopiesValues(t *testing.T) {
	store := NewDraftStore()

	d := newDraft(5, "Lampa")
	d.CustomValues["custom_1"] = StrList("czerwony")
	stored := store.Add(d)

	// 调用方改自己那份，仓内快照不动
	d.BaseValues["name"] = Str("Zmieniona")
	d.CustomValues["custom_1"].List[0] = "zielony"

	got := store.List(-1)[0]
	if got.BaseValues["name"].AsString() != "Lampa" {
		t.Error("入仓后外部修改不应影响快照")
	}
	if got.CustomValues["custom_1"].List[0] != "czerwony" {
		t.Error("列表值未深拷贝")
	}
	_ = stored
}

func TestDraftStore_AddTrimsDescription(t *testing.T) {
	store := NewDraftStore()

	d := newDraft(5, "Lampa")
	d.BaseValues["description"] = Html("<br/><br/>Opis<br/>")
	store.Add(d)

	got := store.List(-1)[0]
	if desc := got.BaseValues["description"].AsString(); desc != "Opis" {
		t.Errorf("描述 = %q, want Opis（入仓时去首尾空行）", desc)
	}
}

func TestDraftStore_UpdateRemove(t *testing.T) {
	store := NewDraftStore()
	a := store.Add(newDraft(5, "Lampa"))
	store.Add(newDraft(5, "Stol"))

	// 更新保 LocalID
	if err := store.Update(a.LocalID, newDraft(5, "Lampa XL")); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got := store.List(-1)[0]
	if got.LocalID != a.LocalID || got.BaseValues["name"].AsString() != "Lampa XL" {
		t.Errorf("更新结果 = %d/%s", got.LocalID, got.BaseValues["name"].AsString())
	}

	// 删除
	if err := store.Remove(a.LocalID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("删除后草稿数 = %d, want 1", store.Len())
	}

	// 不存在的ID
	if err := store.Update(99, newDraft(5, "x")); err == nil {
		t.Error("更新不存在的草稿应报错")
	}
	if err := store.Remove(99); err == nil {
		t.Error("删除不存在的草稿应报错")
	}
}

func TestDraftStore_Clear(t *testing.T) {
	store := NewDraftStore()
	store.Add(newDraft(5, "Lampa"))
	store.Add(newDraft(5, "Stol"))

	snapshot := store.Snapshot()
	store.Clear()

	if store.Len() != 0 {
		t.Errorf("清空后草稿数 = %d", store.Len())
	}
	// 快照不受清空影响
	if len(snapshot) != 2 {
		t.Errorf("快照数 = %d, want 2", len(snapshot))
	}

	// 清空不重置ID序列
	next := store.Add(newDraft(5, "Krzeslo"))
	if next.LocalID != 3 {
		t.Errorf("清空后 LocalID = %d, want 3", next.LocalID)
	}
}
