package service

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"tradefair_dev_v1_202608/internal/api/dto"
	"tradefair_dev_v1_202608/internal/model"
	"tradefair_dev_v1_202608/internal/repository"
)

// ==================== 摊位编号分配 ====================

// 每个类目一把锁，进程内串行化同类目的编号分配。
// 跨进程的兜底是 shed_number 的唯一索引 + 一次冲突重试。
var domainLocks = map[string]*sync.Mutex{
	model.DomainClothings:   {},
	model.DomainElectronics: {},
	model.DomainFood:        {},
	model.DomainJewelry:     {},
}

// AllocateShedNumber 计算类目内下一个摊位序号
// 口径：只数 Shed 表（不数 VendorProfile），调用方需持有对应类目锁
func AllocateShedNumber(ctx context.Context, sheds repository.ShedRepository, domain string) (int, string, error) {
	if !model.IsValidDomain(domain) {
		return 0, "", ErrInvalidDomain
	}

	count, err := sheds.CountByDomain(ctx, domain)
	if err != nil {
		return 0, "", err
	}

	seq := int(count) + 1
	if seq > model.ShedCapacityPerDomain {
		return 0, "", ErrShedCapacityExceeded
	}

	return seq, model.FormatShedNumber(domain, seq), nil
}

// AllocateAndCreateShed 分配编号并落库
// 唯一索引冲突时重算一次序号再试，仍冲突则返回 ErrShedConflict 由调用方重试
func AllocateAndCreateShed(ctx context.Context, sheds repository.ShedRepository, vendorProfileID int64, name, domain string, secured bool) (*model.Shed, int, error) {
	lock := domainLocks[domain]
	if lock == nil {
		return nil, 0, ErrInvalidDomain
	}
	lock.Lock()
	defer lock.Unlock()

	for attempt := 0; attempt < 2; attempt++ {
		seq, shedNumber, err := AllocateShedNumber(ctx, sheds, domain)
		if err != nil {
			return nil, 0, err
		}

		shed := &model.Shed{
			VendorProfileID: vendorProfileID,
			ShedNumber:      shedNumber,
			Name:            name,
			Domain:          domain,
			Secured:         secured,
		}
		err = sheds.Create(ctx, shed)
		if err == nil {
			return shed, seq, nil
		}
		// 并发注册撞号：重算一次
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, 0, err
		}
	}

	return nil, 0, ErrShedConflict
}

// ==================== ShedService 摊位服务 ====================

// ShedService 摊位查询与维护
type ShedService struct {
	shedRepo   repository.ShedRepository
	vendorRepo repository.VendorProfileRepository
}

// NewShedService 创建摊位服务
func NewShedService(shedRepo repository.ShedRepository, vendorRepo repository.VendorProfileRepository) *ShedService {
	return &ShedService{shedRepo: shedRepo, vendorRepo: vendorRepo}
}

// GetShed 摊位详情（公开）
func (s *ShedService) GetShed(ctx context.Context, id int64) (*model.Shed, error) {
	shed, err := s.shedRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shed == nil {
		return nil, ErrShedNotFound
	}
	return shed, nil
}

// ListSheds 摊位列表（公开）
func (s *ShedService) ListSheds(ctx context.Context, filter repository.ShedFilter) ([]model.Shed, int64, error) {
	if filter.Domain != "" && !model.IsValidDomain(filter.Domain) {
		return nil, 0, ErrInvalidDomain
	}
	return s.shedRepo.List(ctx, filter)
}

// UpdateShed 更新摊位（仅摊主本人，仅名字和拼图）
func (s *ShedService) UpdateShed(ctx context.Context, userID, shedID int64, req *dto.UpdateShedReq) (*model.Shed, error) {
	shed, err := s.shedRepo.GetByID(ctx, shedID)
	if err != nil {
		return nil, err
	}
	if shed == nil {
		return nil, ErrShedNotFound
	}

	// 归属校验：摊位 -> 摊主档案 -> 用户
	vendor, err := s.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if vendor == nil || shed.VendorProfileID != vendor.ID {
		return nil, ErrNotShedOwner
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Collage != "" {
		fields["collage"] = req.Collage
	}
	if len(fields) > 0 {
		if err := s.shedRepo.UpdateFields(ctx, shedID, fields); err != nil {
			return nil, err
		}
	}

	return s.shedRepo.GetByID(ctx, shedID)
}

// ToShedResp 转换为 DTO
func ToShedResp(shed *model.Shed) dto.ShedResp {
	return dto.ShedResp{
		ID:         shed.ID,
		VendorID:   shed.VendorProfileID,
		ShedNumber: shed.ShedNumber,
		Name:       shed.Name,
		Domain:     shed.Domain,
		DomainName: model.DomainNames[shed.Domain],
		Secured:    shed.Secured,
		Collage:    shed.Collage,
	}
}

// ==================== 错误定义 ====================

var (
	ErrInvalidDomain        = errors.New("无效的摊位类目")
	ErrShedCapacityExceeded = errors.New("该类目摊位已满（上限 100）")
	ErrShedConflict         = errors.New("摊位编号分配冲突，请重试")
	ErrShedNotFound         = errors.New("摊位不存在")
	ErrNotShedOwner         = errors.New("只能操作自己的摊位")
)
