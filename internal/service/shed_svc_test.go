package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

// ==================== 摊位编号分配测试 ====================

func TestAllocateShedNumber_Sequence(t *testing.T) {
	db := setupServiceTestDB(t)
	sheds := repository.NewShedRepository(db)
	ctx := context.Background()

	// 同一类目连续分配，编号应为 CB001, CB002, CB003...
	for i := 1; i <= 3; i++ {
		shed, seq, err := AllocateAndCreateShed(ctx, sheds, int64(i), fmt.Sprintf("摊位%d", i), model.DomainClothings, false)
		if err != nil {
			t.Fatalf("第 %d 次分配失败: %v", i, err)
		}
		if seq != i {
			t.Errorf("seq = %d, want %d", seq, i)
		}
		want := fmt.Sprintf("CB%03d", i)
		if shed.ShedNumber != want {
			t.Errorf("ShedNumber = %s, want %s", shed.ShedNumber, want)
		}
	}
}

func TestAllocateShedNumber_DomainsIndependent(t *testing.T) {
	db := setupServiceTestDB(t)
	sheds := repository.NewShedRepository(db)
	ctx := context.Background()

	// 不同类目各自从 001 开始
	cases := []struct {
		domain string
		want   string
	}{
		{model.DomainClothings, "CB001"},
		{model.DomainElectronics, "EC001"},
		{model.DomainFood, "FB001"},
		{model.DomainJewelry, "JA001"},
	}

	for _, tc := range cases {
		shed, _, err := AllocateAndCreateShed(ctx, sheds, 1, "测试摊位", tc.domain, false)
		if err != nil {
			t.Fatalf("类目 %s 分配失败: %v", tc.domain, err)
		}
		if shed.ShedNumber != tc.want {
			t.Errorf("类目 %s: ShedNumber = %s, want %s", tc.domain, shed.ShedNumber, tc.want)
		}
	}
}

func TestAllocateShedNumber_CapacityExceeded(t *testing.T) {
	db := setupServiceTestDB(t)
	sheds := repository.NewShedRepository(db)
	ctx := context.Background()

	// 直接灌满 100 个摊位
	for i := 1; i <= model.ShedCapacityPerDomain; i++ {
		db.Create(&model.Shed{
			VendorProfileID: int64(i),
			ShedNumber:      model.FormatShedNumber(model.DomainFood, i),
			Name:            "占位摊位",
			Domain:          model.DomainFood,
		})
	}

	// 第 101 个应被拒绝
	_, _, err := AllocateAndCreateShed(ctx, sheds, 101, "超员摊位", model.DomainFood, false)
	if !errors.Is(err, ErrShedCapacityExceeded) {
		t.Errorf("err = %v, want ErrShedCapacityExceeded", err)
	}
}

func TestAllocateShedNumber_InvalidDomain(t *testing.T) {
	db := setupServiceTestDB(t)
	sheds := repository.NewShedRepository(db)
	ctx := context.Background()

	_, _, err := AllocateAndCreateShed(ctx, sheds, 1, "测试摊位", "XX", false)
	if !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("err = %v, want ErrInvalidDomain", err)
	}
}

func TestAllocateShedNumber_ConflictSurfaced(t *testing.T) {
	db := setupServiceTestDB(t)
	sheds := repository.NewShedRepository(db)
	ctx := context.Background()

	// 软删除的摊位不计入 count，但编号的唯一索引仍然占着，
	// 重算一次还是同一个号，此时应把冲突暴露给调用方而不是死循环
	shed := &model.Shed{VendorProfileID: 1, ShedNumber: "JA001", Name: "先占", Domain: model.DomainJewelry}
	db.Create(shed)
	db.Delete(shed)

	_, _, err := AllocateAndCreateShed(ctx, sheds, 2, "后来者", model.DomainJewelry, false)
	if !errors.Is(err, ErrShedConflict) {
		t.Errorf("err = %v, want ErrShedConflict", err)
	}
}

func TestAllocateShedNumber_Concurrent(t *testing.T) {
	db := setupServiceTestDB(t)
	sheds := repository.NewShedRepository(db)
	ctx := context.Background()

	// 类目锁串行化并发分配，10 个并发请求拿到 10 个不同的编号
	const n = 10
	var wg sync.WaitGroup
	results := make(chan string, n)
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(vendorID int64) {
			defer wg.Done()
			shed, _, err := AllocateAndCreateShed(ctx, sheds, vendorID, "并发摊位", model.DomainElectronics, false)
			if err != nil {
				errs <- err
				return
			}
			results <- shed.ShedNumber
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("并发分配失败: %v", err)
	}

	seen := make(map[string]bool)
	for number := range results {
		if seen[number] {
			t.Errorf("编号重复: %s", number)
		}
		seen[number] = true
	}
	if len(seen) != n {
		t.Errorf("分配到 %d 个编号, want %d", len(seen), n)
	}
}

// ==================== ShedService 测试 ====================

func TestShedService_UpdateShed_Ownership(t *testing.T) {
	db := setupServiceTestDB(t)
	shedRepo := repository.NewShedRepository(db)
	vendorRepo := repository.NewVendorProfileRepository(db)
	svc := NewShedService(shedRepo, vendorRepo)
	ctx := context.Background()

	// 摊主 A (user 1) 拥有摊位
	db.Create(&model.User{Username: "vendor_a", Email: "a@test.com", Password: "x", IsVendor: true, IsActive: true})
	db.Create(&model.VendorProfile{UserID: 1, BusinessName: "A 商号", Domain: model.DomainClothings, ShedNumber: 1})
	db.Create(&model.Shed{VendorProfileID: 1, ShedNumber: "CB001", Name: "A 的摊位", Domain: model.DomainClothings, Secured: true})

	// 另一个用户 (user 2) 也是摊主
	db.Create(&model.User{Username: "vendor_b", Email: "b@test.com", Password: "x", IsVendor: true, IsActive: true})
	db.Create(&model.VendorProfile{UserID: 2, BusinessName: "B 商号", Domain: model.DomainFood, ShedNumber: 1})

	// B 尝试改 A 的摊位
	_, err := svc.UpdateShed(ctx, 2, 1, &dto.UpdateShedReq{Name: "抢来的摊位"})
	if !errors.Is(err, ErrNotShedOwner) {
		t.Errorf("err = %v, want ErrNotShedOwner", err)
	}

	// A 本人可以改
	updated, err := svc.UpdateShed(ctx, 1, 1, &dto.UpdateShedReq{Name: "A 的新摊位"})
	if err != nil {
		t.Fatalf("UpdateShed() error = %v", err)
	}
	if updated.Name != "A 的新摊位" {
		t.Errorf("Name = %s, want A 的新摊位", updated.Name)
	}
}

func TestShedService_ListSheds_InvalidDomain(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewShedService(repository.NewShedRepository(db), repository.NewVendorProfileRepository(db))

	_, _, err := svc.ListSheds(context.Background(), repository.ShedFilter{Domain: "ZZ"})
	if !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("err = %v, want ErrInvalidDomain", err)
	}
}
