package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

// 测试夹具：user 1 = 已缴费摊主，user 2 = 未缴费摊主
func newProductFixture(t *testing.T) (*ProductService, *gorm.DB) {
	db := setupServiceTestDB(t)
	svc := NewProductService(
		repository.NewProductRepository(db),
		repository.NewShedRepository(db),
		repository.NewVendorProfileRepository(db),
	)

	db.Create(&model.User{Username: "paid", Email: "paid@test.com", Password: "x", IsVendor: true, IsActive: true})
	db.Create(&model.VendorProfile{UserID: 1, BusinessName: "缴费铺", Domain: model.DomainClothings, ShedNumber: 1, PaymentStatus: model.VendorPaymentCompleted})
	db.Create(&model.Shed{VendorProfileID: 1, ShedNumber: "CB001", Name: "缴费铺", Domain: model.DomainClothings, Secured: true})

	db.Create(&model.User{Username: "unpaid", Email: "unpaid@test.com", Password: "x", IsVendor: true, IsActive: true})
	db.Create(&model.VendorProfile{UserID: 2, BusinessName: "欠费铺", Domain: model.DomainFood, ShedNumber: 1, PaymentStatus: model.VendorPaymentPending})
	db.Create(&model.Shed{VendorProfileID: 2, ShedNumber: "FB001", Name: "欠费铺", Domain: model.DomainFood, Secured: false})

	return svc, db
}

func qty(n int) *int { return &n }

// ==================== 上架测试 ====================

func TestCreateProduct(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &dto.CreateProductReq{
		Name:     "安卡拉裙",
		Price:    "15000.00",
		Quantity: qty(8),
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if !product.Price.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Price = %s, want 15000", product.Price)
	}
	if product.ShedID != 1 || product.VendorProfileID != 1 {
		t.Errorf("归属错误: shed=%d vendor=%d", product.ShedID, product.VendorProfileID)
	}
}

func TestCreateProduct_UnsecuredShed(t *testing.T) {
	svc, _ := newProductFixture(t)

	// 欠费摊位不能上架
	_, err := svc.CreateProduct(context.Background(), 2, &dto.CreateProductReq{
		Name:     "烤鱼",
		Price:    "2000",
		Quantity: qty(10),
	})
	if !errors.Is(err, ErrShedNotSecured) {
		t.Errorf("err = %v, want ErrShedNotSecured", err)
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		req     *dto.CreateProductReq
		wantErr error
	}{
		{"价格为零", &dto.CreateProductReq{Name: "a", Price: "0", Quantity: qty(1)}, ErrInvalidPrice},
		{"价格为负", &dto.CreateProductReq{Name: "a", Price: "-5", Quantity: qty(1)}, ErrInvalidPrice},
		{"价格非数字", &dto.CreateProductReq{Name: "a", Price: "abc", Quantity: qty(1)}, ErrInvalidPrice},
		{"库存为负", &dto.CreateProductReq{Name: "a", Price: "100", Quantity: qty(-1)}, ErrInvalidQuantity},
		{"库存为零合法", &dto.CreateProductReq{Name: "a", Price: "100", Quantity: qty(0)}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, 1, tc.req)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("err = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// ==================== 更新 / 删除测试 ====================

func TestUpdateProduct_Ownership(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, 1, &dto.CreateProductReq{Name: "头巾", Price: "3000", Quantity: qty(20)})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}

	// 其他摊主不能改
	_, err = svc.UpdateProduct(ctx, 2, &dto.UpdateProductReq{ID: product.ID, Price: "1"})
	if !errors.Is(err, ErrNotProductOwner) {
		t.Errorf("err = %v, want ErrNotProductOwner", err)
	}

	// 本人改价格和库存
	updated, err := svc.UpdateProduct(ctx, 1, &dto.UpdateProductReq{ID: product.ID, Price: "3500", Quantity: qty(15)})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if !updated.Price.Equal(decimal.NewFromInt(3500)) || updated.Quantity != 15 {
		t.Errorf("更新未生效: price=%s quantity=%d", updated.Price, updated.Quantity)
	}
}

func TestDeleteProduct(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	product, _ := svc.CreateProduct(ctx, 1, &dto.CreateProductReq{Name: "凉鞋", Price: "5000", Quantity: qty(3)})

	if err := svc.DeleteProduct(ctx, 2, product.ID); !errors.Is(err, ErrNotProductOwner) {
		t.Errorf("err = %v, want ErrNotProductOwner", err)
	}

	if err := svc.DeleteProduct(ctx, 1, product.ID); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	if _, err := svc.GetProduct(ctx, product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("删除后仍可查到: err = %v", err)
	}
}

// ==================== 列表测试 ====================

func TestListProducts_DomainFilter(t *testing.T) {
	svc, _ := newProductFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateProduct(ctx, 1, &dto.CreateProductReq{Name: "衣服", Price: "1000", Quantity: qty(1)}); err != nil {
			t.Fatalf("造数据失败: %v", err)
		}
	}

	// CB 类目 3 件
	products, total, err := svc.ListProducts(ctx, repository.ProductFilter{Domain: model.DomainClothings})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if total != 3 || len(products) != 3 {
		t.Errorf("total = %d, len = %d, want 3", total, len(products))
	}

	// FB 类目 0 件
	_, total, err = svc.ListProducts(ctx, repository.ProductFilter{Domain: model.DomainFood})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}

	// 非法类目
	if _, _, err := svc.ListProducts(ctx, repository.ProductFilter{Domain: "ZZ"}); !errors.Is(err, ErrInvalidDomain) {
		t.Errorf("err = %v, want ErrInvalidDomain", err)
	}
}
