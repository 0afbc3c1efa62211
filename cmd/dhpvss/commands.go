package main

import (
	"github.com/urfave/cli"
	"go.dedis.ch/kyber/v3"
	"go.dedis.ch/onet/v3/log"

	"github.com/brorsson/dhpvss/pvss"
)

func setupCmd(c *cli.Context) error {
	_, suite, ctx, err := loadCtx(c, "config")
	if err != nil {
		return err
	}
	log.Infof("epoch configuration: curve=%s threshold=%d size=%d", suite.Name(), ctx.T, ctx.N)
	return nil
}

func demoCmd(c *cli.Context) error {
	_, suite, ctx, err := loadCtx(c, "config")
	if err != nil {
		return err
	}

	dealer := pvss.Keygen(suite)
	secretKP := pvss.Keygen(suite)
	secret := secretKP.Pub

	committee := make([]*pvss.KeyPair, ctx.N)
	pks := make([]kyber.Point, ctx.N)
	for i := range committee {
		committee[i] = pvss.Keygen(suite)
		pks[i] = committee[i].Pub
	}

	dist, err := ctx.DistributeProve(dealer, pks, secret)
	if err != nil {
		return err
	}
	log.Infof("dealer published %d encrypted shares", len(dist.Shares))

	ok, err := ctx.DistributeVerify(dealer.Pub, pks, dist)
	if err != nil {
		return err
	}
	if !ok {
		return cli.NewExitError("distribution failed public verification", 1)
	}
	log.Info("distribution verified")

	t1 := ctx.T + 1
	shares := make([]kyber.Point, t1)
	indices := make([]int, t1)
	for i := 0; i < t1; i++ {
		d, err := pvss.DecryptShareProve(suite, dealer.Pub, committee[i], dist.Shares[i])
		if err != nil {
			return err
		}
		okShare, err := pvss.DecryptShareVerify(suite, dealer.Pub, committee[i].Pub, dist.Shares[i], d)
		if err != nil {
			return err
		}
		if !okShare {
			return cli.NewExitError("share decryption failed verification", 1)
		}
		shares[i] = d.Share
		indices[i] = i + 1
	}
	log.Infof("%d members decrypted and verified their shares", t1)

	recovered, err := ctx.Reconstruct(shares, indices)
	if err != nil {
		return err
	}
	if !suite.PointCmp(recovered, secret) {
		return cli.NewExitError("reconstructed secret does not match", 1)
	}
	log.Info("reconstructed secret matches original")
	return nil
}

func reshareCmd(c *cli.Context) error {
	_, suite, ctx, err := loadCtx(c, "config")
	if err != nil {
		return err
	}
	_, nextSuite, next, err := loadCtx(c, "next-config")
	if err != nil {
		return err
	}

	dealer := pvss.Keygen(suite)
	secretKP := pvss.Keygen(suite)
	secret := secretKP.Pub

	committee := make([]*pvss.KeyPair, ctx.N)
	pks := make([]kyber.Point, ctx.N)
	for i := range committee {
		committee[i] = pvss.Keygen(suite)
		pks[i] = committee[i].Pub
	}

	dist, err := ctx.DistributeProve(dealer, pks, secret)
	if err != nil {
		return err
	}
	if ok, err := ctx.DistributeVerify(dealer.Pub, pks, dist); err != nil {
		return err
	} else if !ok {
		return cli.NewExitError("distribution failed public verification", 1)
	}

	nextCommittee := make([]*pvss.KeyPair, next.N)
	nextPks := make([]kyber.Point, next.N)
	for i := range nextCommittee {
		nextCommittee[i] = pvss.Keygen(nextSuite)
		nextPks[i] = nextCommittee[i].Pub
	}

	// Every current-committee member also holds a fresh key pair in its
	// role as next-epoch dealer.
	nextDealers := make([]*pvss.KeyPair, ctx.N)
	for i := range nextDealers {
		nextDealers[i] = pvss.Keygen(suite)
	}

	t1 := ctx.T + 1
	reshareOut := make([]*pvss.Reshares, t1)
	producerIdx := make([]int, t1)
	for i := 0; i < t1; i++ {
		memberIdx := i + 1
		r, err := ctx.ReshareProve(next, memberIdx, committee[i], nextDealers[i], dealer.Pub, dist.Shares, nextPks)
		if err != nil {
			return err
		}
		ok, err := ctx.ReshareVerify(next, committee[i].Pub, nextDealers[i].Pub, dealer.Pub, dist.Shares, dist.Shares[i], r, nextPks)
		if err != nil {
			return err
		}
		if !ok {
			return cli.NewExitError("reshare failed public verification", 1)
		}
		reshareOut[i] = r
		producerIdx[i] = memberIdx
	}
	log.Infof("%d current-committee members reshared to the next committee", t1)

	nextEncShares := make([]kyber.Point, next.N)
	for j := 1; j <= next.N; j++ {
		encShare, err := ctx.ReconstructReshare(reshareOut, producerIdx, j)
		if err != nil {
			return err
		}
		nextEncShares[j-1] = encShare
	}
	log.Infof("reconstructed %d next-epoch encrypted shares", len(nextEncShares))

	// Every producer's reshare masks its piece under its own next-epoch
	// dealer key; the t1 contributing producers' next-dealer pubs
	// recombine into the single joint dealer pub the next committee
	// decrypts against.
	nextDealerPks := make([]kyber.Point, t1)
	for i := 0; i < t1; i++ {
		nextDealerPks[i] = nextDealers[i].Pub
	}
	jointDealerPub, err := ctx.CommitteeDistKeyCalc(nextDealerPks, producerIdx)
	if err != nil {
		return err
	}

	t2 := next.T + 1
	nextShares := make([]kyber.Point, t2)
	nextIndices := make([]int, t2)
	for i := 0; i < t2; i++ {
		d, err := pvss.DecryptShareProve(nextSuite, jointDealerPub, nextCommittee[i], nextEncShares[i])
		if err != nil {
			return err
		}
		okShare, err := pvss.DecryptShareVerify(nextSuite, jointDealerPub, nextCommittee[i].Pub, nextEncShares[i], d)
		if err != nil {
			return err
		}
		if !okShare {
			return cli.NewExitError("next-epoch share decryption failed verification", 1)
		}
		nextShares[i] = d.Share
		nextIndices[i] = i + 1
	}
	log.Infof("%d next-epoch members decrypted and verified their shares", t2)

	recovered, err := next.Reconstruct(nextShares, nextIndices)
	if err != nil {
		return err
	}
	if !nextSuite.PointCmp(recovered, secret) {
		return cli.NewExitError("reconstructed secret does not match after reshare", 1)
	}
	log.Info("reshared secret reconstructed in the next epoch matches original")
	return nil
}
