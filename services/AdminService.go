package services

import (
	"log"

	"merchstore/models"
	"merchstore/repository"
)

type AdminService struct {
	cv repository.CredentialVerifier
	sr repository.SessionRepository
}

func NewAdminService(verifier repository.CredentialVerifier, sessionRepo repository.SessionRepository) AdminService {
	return AdminService{
		cv: verifier,
		sr: sessionRepo,
	}
}

func (as *AdminService) Signin(username, password string) (sessionId string, err error) {
	if !as.cv.Verify(username, password) {
		log.Printf("Signin: invalid credentials")
		err = models.ErrUnautorized
		return
	}
	sessionId, err = as.sr.CreateSession(username, "manager")
	return
}

func (as *AdminService) CheckAccess(sessionId string) (access bool, err error) {
	_, role, exists, e := as.sr.GetSessionInfo(sessionId)
	if e != nil {
		err = e
		return
	}
	if !exists || role != "manager" {
		return
	}
	access = true
	return
}

func (as *AdminService) Refresh(sessionId string) (err error) {
	err = as.sr.RefreshSession(sessionId, repository.SessionTTL)
	return
}

func (as *AdminService) Logout(sessionId string) (err error) {
	err = as.sr.DeleteSession(sessionId)
	return
}
