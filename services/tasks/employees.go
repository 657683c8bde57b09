package tasks

import (
	"context"
	"errors"
	"strings"

	employeeRepo "revamp/database/repository/employee"
	"revamp/models"
	"revamp/utils"

	"go.uber.org/zap"
)

type DefaultEmployeeService struct {
	Employees employeeRepo.EmployeeRepository
	Logger    *zap.Logger
}

func (s *DefaultEmployeeService) Register(ctx context.Context, req models.RegisterEmployeeRequest) (*models.Employee, error) {
	if strings.TrimSpace(req.EmployeeID) == "" || strings.TrimSpace(req.UserID) == "" {
		return nil, ErrEmployeeIDRequired.WithMessage("employeeId and userId are required")
	}
	emp := &models.Employee{
		EmployeeID:     strings.TrimSpace(req.EmployeeID),
		UserID:         strings.TrimSpace(req.UserID),
		Username:       strings.TrimSpace(req.Username),
		Email:          strings.TrimSpace(req.Email),
		Department:     req.Department,
		Specialization: req.Specialization,
		Skills:         req.Skills,
		IsAvailable:    true,
	}
	if err := s.Employees.Create(ctx, emp); err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeExists) {
			return nil, ErrEmployeeExists
		}
		return nil, err
	}
	utils.LoggerOr(s.Logger).Info("employee registered", zap.String("employeeId", emp.EmployeeID), zap.String("userId", emp.UserID))
	return emp, nil
}

func (s *DefaultEmployeeService) GetByUserID(ctx context.Context, userID string) (*models.Employee, error) {
	emp, err := s.Employees.GetByUserID(ctx, userID)
	if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
		return nil, ErrEmployeeNotFound.WithMessage("no employee for user %s", userID)
	}
	return emp, err
}

func (s *DefaultEmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.Employees.List(ctx)
}
